package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/hall-booking/internal/model"
)

func testHall() *model.Hall {
	return &model.Hall{
		ID:        1,
		OwnerID:   10,
		Name:      "Grand Pavilion",
		City:      "Lahore",
		Capacity:  500,
		BasePrice: 500000,
		AdditionalCharges: []model.AdditionalCharge{
			{Name: "Extra Hour", Price: 50000},
		},
	}
}

func TestQuote_WeddingExample(t *testing.T) {
	hall := testHall()
	wedding := &model.EventType{ID: 7, HallID: 1, Name: "Wedding", PriceModifier: 50}
	menu := &model.Menu{ID: 3, HallID: 1, Name: "Deluxe", PricePerPlate: 750}

	b, err := Quote(hall, wedding, menu, 200)
	require.NoError(t, err)

	assert.Equal(t, int64(500000), b.BasePrice)
	assert.Equal(t, int64(150000), b.MenuPrice)
	assert.Equal(t, int64(250000), b.FunctionTypeCharge)
	assert.Equal(t, int64(950000), b.Total)
}

func TestQuote_TotalIsSumOfParts(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Birthday", PriceModifier: -25}
	menu := &model.Menu{ID: 3, HallID: 1, PricePerPlate: 1200}

	cases := []struct {
		name   string
		menu   *model.Menu
		guests uint32
	}{
		{"with menu", menu, 120},
		{"without menu", nil, 1},
		{"full capacity", menu, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Quote(hall, et, tc.menu, tc.guests)
			require.NoError(t, err)
			sum := b.BasePrice + b.MenuPrice + b.FunctionTypeCharge + model.ChargeTotal(b.AdditionalCharges)
			assert.Equal(t, sum, b.Total)
		})
	}
}

func TestQuote_NoMenuMeansZeroMenuPrice(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Conference", PriceModifier: 0}

	b, err := Quote(hall, et, nil, 50)
	require.NoError(t, err)
	assert.Zero(t, b.MenuPrice)
	assert.Zero(t, b.FunctionTypeCharge)
	assert.Equal(t, int64(550000), b.Total)
}

func TestQuote_AdditionalChargesAreFlat(t *testing.T) {
	// Charges must not scale with the guest count.
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Wedding", PriceModifier: 50}

	small, err := Quote(hall, et, nil, 10)
	require.NoError(t, err)
	large, err := Quote(hall, et, nil, 400)
	require.NoError(t, err)
	assert.Equal(t, small.Total, large.Total)
}

func TestQuote_CapacityExceeded(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Wedding", PriceModifier: 50}

	_, err := Quote(hall, et, nil, 501)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestQuote_ZeroGuests(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Wedding", PriceModifier: 50}

	_, err := Quote(hall, et, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidGuestCount)
}

func TestQuote_MenuFromAnotherHall(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Wedding", PriceModifier: 50}
	foreign := &model.Menu{ID: 9, HallID: 2, PricePerPlate: 900}

	_, err := Quote(hall, et, foreign, 100)
	assert.ErrorIs(t, err, ErrMenuMismatch)
}

func TestQuote_EventTypeFromAnotherHall(t *testing.T) {
	hall := testHall()
	foreign := &model.EventType{ID: 8, HallID: 2, Name: "Wedding", PriceModifier: 50}

	_, err := Quote(hall, foreign, nil, 100)
	assert.ErrorIs(t, err, ErrEventTypeMismatch)
}

func TestQuote_NegativeModifierDiscounts(t *testing.T) {
	hall := testHall()
	et := &model.EventType{ID: 7, HallID: 1, Name: "Charity", PriceModifier: -100}

	b, err := Quote(hall, et, nil, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(-500000), b.FunctionTypeCharge)
	assert.Equal(t, int64(50000), b.Total) // only the flat charges remain
}
