package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResidentQuery carries the filter, sort and paging options for a resident
// listing. Passed explicitly per request so listings stay stateless.
type ResidentQuery struct {
	Search   string
	Mobility []string
	Diet     string
	Sort     string // name_asc (default) or name_desc
	Page     int
	PageSize int
}

// ResidentPage is one page of a filtered resident listing.
type ResidentPage struct {
	Items []models.Resident `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}

// ImportResult summarizes a bulk resident import.
type ImportResult struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	BatchID  string `json:"batch_id"`
}

// ResidentService encapsulates the business logic for residents.
type ResidentService struct {
	repo *repository.ResidentRepository
}

// NewResidentService creates a new instance of ResidentService.
func NewResidentService(repo *repository.ResidentRepository) *ResidentService {
	return &ResidentService{repo: repo}
}

// CreateResident validates and stores a new resident.
func (s *ResidentService) CreateResident(ctx context.Context, resident *models.Resident) (*models.Resident, error) {
	resident.Name = strings.TrimSpace(resident.Name)
	if resident.Name == "" {
		logger.Log.Warn("Resident name is empty during creation")
		return nil, fmt.Errorf("resident name is required")
	}
	if resident.Mobility == "" {
		resident.Mobility = models.MobilityLow
	}
	if !models.ValidMobility(resident.Mobility) {
		return nil, fmt.Errorf("invalid mobility level: %s", resident.Mobility)
	}

	created, err := s.repo.CreateResident(ctx, resident)
	if err != nil {
		return nil, fmt.Errorf("failed to create resident: %v", err)
	}
	return created, nil
}

// GetResident retrieves a resident by its ID.
func (s *ResidentService) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}

	resident, err := s.repo.GetResidentByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %v", err)
	}
	return resident, nil
}

// UpdateResident updates an existing resident.
func (s *ResidentService) UpdateResident(ctx context.Context, id string, updated *models.Resident) (*models.Resident, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid resident ID: %v", err)
	}

	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return nil, fmt.Errorf("resident name is required")
	}
	if !models.ValidMobility(updated.Mobility) {
		return nil, fmt.Errorf("invalid mobility level: %s", updated.Mobility)
	}

	resident, err := s.repo.UpdateResident(ctx, objID, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update resident: %v", err)
	}
	return resident, nil
}

// DeleteResident removes a resident from the database.
func (s *ResidentService) DeleteResident(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid resident ID: %v", err)
	}

	if err := s.repo.DeleteResident(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete resident: %v", err)
	}
	return nil
}

// ListResidents applies the query's filters, sort and paging to the resident
// collection and returns one page.
func (s *ResidentService) ListResidents(ctx context.Context, query ResidentQuery) (*ResidentPage, error) {
	all, err := s.repo.GetAllResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch residents: %v", err)
	}

	filtered := filterResidents(all, query)
	sortResidents(filtered, query.Sort)

	if query.PageSize <= 0 {
		query.PageSize = 12
	}
	total := len(filtered)
	pages := (total + query.PageSize - 1) / query.PageSize
	if pages < 1 {
		pages = 1
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Page > pages {
		query.Page = pages
	}

	start := (query.Page - 1) * query.PageSize
	end := start + query.PageSize
	if end > total {
		end = total
	}

	return &ResidentPage{
		Items: filtered[start:end],
		Total: total,
		Page:  query.Page,
		Pages: pages,
	}, nil
}

func filterResidents(residents []models.Resident, query ResidentQuery) []models.Resident {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	diet := strings.ToLower(strings.TrimSpace(query.Diet))

	mobility := make(map[string]bool, len(query.Mobility))
	for _, m := range query.Mobility {
		mobility[strings.ToLower(m)] = true
	}

	out := make([]models.Resident, 0, len(residents))
	for _, r := range residents {
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		if len(mobility) > 0 && !mobility[strings.ToLower(r.Mobility)] {
			continue
		}
		if diet != "" && !strings.Contains(strings.ToLower(r.Preferences.Diet), diet) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortResidents(residents []models.Resident, order string) {
	sort.SliceStable(residents, func(i, j int) bool {
		a := strings.ToLower(residents[i].Name)
		b := strings.ToLower(residents[j].Name)
		if order == "name_desc" {
			return a > b
		}
		return a < b
	})
}

// ExportCSV writes all residents as CSV with columns name, mobility, diet and
// allergies (semicolon separated).
func (s *ResidentService) ExportCSV(ctx context.Context, w io.Writer) error {
	residents, err := s.repo.GetAllResidents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch residents: %v", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "mobility", "diet", "allergies"}); err != nil {
		return err
	}
	for _, r := range residents {
		record := []string{r.Name, r.Mobility, r.Preferences.Diet, strings.Join(r.Allergies, ";")}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportJSON writes all residents as a JSON array.
func (s *ResidentService) ExportJSON(ctx context.Context, w io.Writer) error {
	residents, err := s.repo.GetAllResidents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch residents: %v", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(residents)
}

// importedResident is the shape accepted by both CSV and JSON imports.
type importedResident struct {
	Name        string                     `json:"name"`
	Mobility    string                     `json:"mobility"`
	Diet        string                     `json:"diet"`
	Preferences models.ResidentPreferences `json:"preferences"`
	Allergies   []string                   `json:"allergies"`
}

// ImportCSV reads residents from CSV and inserts them one by one. Rows
// without a name are skipped rather than failing the whole batch.
func (s *ResidentService) ImportCSV(ctx context.Context, reader io.Reader, batchID string) (*ImportResult, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %v", err)
	}
	if len(records) == 0 {
		return &ImportResult{BatchID: batchID}, nil
	}

	idx := map[string]int{}
	for i, col := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []importedResident
	for _, row := range records[1:] {
		items = append(items, importedResident{
			Name:      field(row, "name"),
			Mobility:  field(row, "mobility"),
			Diet:      field(row, "diet"),
			Allergies: splitAllergies(field(row, "allergies")),
		})
	}
	return s.importResidents(ctx, items, batchID)
}

// ImportJSON reads a JSON array of residents and inserts them one by one.
func (s *ResidentService) ImportJSON(ctx context.Context, reader io.Reader, batchID string) (*ImportResult, error) {
	var items []importedResident
	if err := json.NewDecoder(reader).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %v", err)
	}
	return s.importResidents(ctx, items, batchID)
}

func (s *ResidentService) importResidents(ctx context.Context, items []importedResident, batchID string) (*ImportResult, error) {
	result := &ImportResult{BatchID: batchID}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			result.Skipped++
			continue
		}

		diet := item.Diet
		if diet == "" {
			diet = item.Preferences.Diet
		}
		mobility := strings.ToLower(item.Mobility)
		if !models.ValidMobility(mobility) {
			mobility = models.MobilityLow
		}

		resident := &models.Resident{
			Name:        name,
			Mobility:    mobility,
			Preferences: models.ResidentPreferences{Diet: diet},
			Allergies:   item.Allergies,
		}
		if _, err := s.repo.CreateResident(ctx, resident); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	logger.Log.WithFields(map[string]interface{}{
		"batch_id": batchID,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("Resident import finished")
	return result, nil
}

func splitAllergies(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	var out []string
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
