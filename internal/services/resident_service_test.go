package services

import (
	"testing"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResidents() []models.Resident {
	return []models.Resident{
		{Name: "Ama Mensah", Mobility: models.MobilityLow, Preferences: models.ResidentPreferences{Diet: "low-sodium"}},
		{Name: "Kwesi Boateng", Mobility: models.MobilityMedium, Preferences: models.ResidentPreferences{Diet: "diabetic"}},
		{Name: "Yaw Owusu", Mobility: models.MobilityHigh, Preferences: models.ResidentPreferences{Diet: "regular"}},
	}
}

func TestFilterResidentsBySearch(t *testing.T) {
	out := filterResidents(sampleResidents(), ResidentQuery{Search: "mensah"})
	require.Len(t, out, 1)
	assert.Equal(t, "Ama Mensah", out[0].Name)
}

func TestFilterResidentsByMobilityAndDiet(t *testing.T) {
	out := filterResidents(sampleResidents(), ResidentQuery{Mobility: []string{"low", "medium"}})
	assert.Len(t, out, 2)

	out = filterResidents(sampleResidents(), ResidentQuery{Diet: "diab"})
	require.Len(t, out, 1)
	assert.Equal(t, "Kwesi Boateng", out[0].Name)
}

func TestSortResidents(t *testing.T) {
	residents := sampleResidents()
	sortResidents(residents, "name_desc")
	assert.Equal(t, "Yaw Owusu", residents[0].Name)

	sortResidents(residents, "name_asc")
	assert.Equal(t, "Ama Mensah", residents[0].Name)
}

func TestSplitAllergies(t *testing.T) {
	assert.Equal(t, []string{"fish", "shellfish", "nuts"}, splitAllergies("fish; shellfish, nuts"))
	assert.Nil(t, splitAllergies(""))
	assert.Equal(t, []string{"fish"}, splitAllergies(" fish ; "))
}
