package database_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/internal/testdb"
	"github.com/yeremiapane/resteasy/models"
)

func TestAddItemIsIdempotent(t *testing.T) {
	s := testdb.Store(t)

	first, err := s.AddItem("Margherita", 800)
	require.NoError(t, err)
	second, err := s.AddItem("Margherita", 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var item models.Item
	require.NoError(t, s.DB().First(&item, first).Error)
	assert.Equal(t, 800, item.Calories)

	_, err = s.AddItem("", 0)
	assert.ErrorIs(t, err, database.ErrValidation)
	_, err = s.AddItem("Soup", -5)
	assert.ErrorIs(t, err, database.ErrValidation)
}

func TestAddDish(t *testing.T) {
	s := testdb.Store(t)
	vid, err := s.AddVendor("Pizza Place", "1 Main St")
	require.NoError(t, err)
	iid, err := s.AddItem("Margherita", 0)
	require.NoError(t, err)

	did, err := s.AddDish(iid, vid, 12.5)
	require.NoError(t, err)

	_, err = s.AddDish(iid, vid, 13)
	assert.ErrorIs(t, err, database.ErrAlreadyExists)

	_, err = s.AddDish(iid+10, vid, 1)
	assert.ErrorIs(t, err, database.ErrReferential)
	_, err = s.AddDish(iid, vid+10, 1)
	assert.ErrorIs(t, err, database.ErrReferential)
	_, err = s.AddDish(iid, vid, -1)
	assert.ErrorIs(t, err, database.ErrValidation)

	got, err := s.GetDID(iid, vid)
	require.NoError(t, err)
	assert.Equal(t, did, got)

	// Referenced rows are protected.
	assert.ErrorIs(t, s.DelItem("Margherita"), database.ErrReferential)
	assert.ErrorIs(t, s.DelVendor("Pizza Place"), database.ErrReferential)

	require.NoError(t, s.DelDish(iid, vid))
	assert.ErrorIs(t, s.DelDish(iid, vid), database.ErrNotFound)
	require.NoError(t, s.DelItem("Margherita"))
	require.NoError(t, s.DelVendor("Pizza Place"))
	assert.ErrorIs(t, s.DelVendor("Pizza Place"), database.ErrNotFound)
}

func TestDuplicateVendor(t *testing.T) {
	s := testdb.Store(t)
	_, err := s.AddVendor("Pizza Place", "1 Main St")
	require.NoError(t, err)
	_, err = s.AddVendor("Pizza Place", "2 Side St")
	assert.ErrorIs(t, err, database.ErrAlreadyExists)
	_, err = s.AddVendor("Nameless", "")
	assert.ErrorIs(t, err, database.ErrValidation)
}

func seedCatalog(t *testing.T, s *database.Store) (pizza, curry uint) {
	t.Helper()
	var err error
	pizza, err = s.AddVendor("Pizza Place", "1 Main St")
	require.NoError(t, err)
	curry, err = s.AddVendor("Curry House", "2 Side St")
	require.NoError(t, err)
	for _, d := range []struct {
		item  string
		vid   uint
		price float64
	}{
		{"Margherita", pizza, 12.5},
		{"Pepperoni Pizza", pizza, 14},
		{"Chicken Curry", curry, 11.25},
		{"Margherita", curry, 10},
	} {
		iid, err := s.AddItem(d.item, 0)
		require.NoError(t, err)
		_, err = s.AddDish(iid, d.vid, d.price)
		require.NoError(t, err)
	}
	return pizza, curry
}

func TestListVendors(t *testing.T) {
	s := testdb.Store(t)
	pizza, curry := seedCatalog(t, s)

	all, err := s.ListVendors("")
	require.NoError(t, err)
	assert.Equal(t, []models.VendorRow{
		{ID: pizza, Name: "Pizza Place", Address: "1 Main St"},
		{ID: curry, Name: "Curry House", Address: "2 Side St"},
	}, all)

	tests := []struct {
		name string
		text string
		want int
	}{
		{"substring", "ouse", 1},
		{"case insensitive", "PIZZA", 1},
		{"shared letters", "e", 2},
		{"percent is literal", "%", 0},
		{"underscore is literal", "_", 0},
		{"no match", "sushi", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.ListVendors(tt.text)
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
			assert.NotNil(t, rows)
		})
	}
}

func TestListDishes(t *testing.T) {
	s := testdb.Store(t)
	pizza, curry := seedCatalog(t, s)

	rows, err := s.ListDishesByName("margherita")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pizza Place", rows[0].Vendor)
	assert.Equal(t, 12.5, rows[0].Price)
	assert.Equal(t, "Curry House", rows[1].Vendor)

	rows, err = s.ListDishesByVendor(curry)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chicken Curry", rows[0].Item)
	assert.Equal(t, 11.25, rows[0].Price)

	rows, err = s.ListDishesByVendor(pizza + curry + 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	s := testdb.Store(t)
	emile, err := s.AddVendor("Émile's Bistro", "3 Rue Haute")
	require.NoError(t, err)
	noir, err := s.AddVendor("CAFÉ NOIR", "4 Rue Basse")
	require.NoError(t, err)
	iid, err := s.AddItem("Crème Brûlée", 300)
	require.NoError(t, err)
	_, err = s.AddDish(iid, emile, 7.5)
	require.NoError(t, err)

	tests := []struct {
		text string
		want uint
	}{
		{"Émile", emile},
		{"émile", emile},
		{"ÉMILE", emile},
		{"Bistro", emile},
		{"CAFÉ", noir},
		{"café", noir},
		{"Café Noir", noir},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rows, err := s.ListVendors(tt.text)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].ID)
		})
	}

	for _, text := range []string{"Crème", "CRÈME", "brûlée"} {
		rows, err := s.ListDishesByName(text)
		require.NoError(t, err)
		require.Len(t, rows, 1, text)
		assert.Equal(t, "Crème Brûlée", rows[0].Item)
	}
}

func TestConcurrentCreatesKeepOneRowPerKey(t *testing.T) {
	const workers = 8
	s := testdb.FileStore(t, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	race := func(fn func(i int)) {
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				fn(i)
			}(i)
		}
	}

	itemIDs := make([]uint, workers)
	itemErrs := make([]error, workers)
	vendorErrs := make([]error, workers)
	race(func(i int) { itemIDs[i], itemErrs[i] = s.AddItem("Crème Brûlée", 300) })
	race(func(i int) { _, vendorErrs[i] = s.AddVendor("Café Noir", "4 Rue Basse") })
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, itemErrs[i])
		assert.Equal(t, itemIDs[0], itemIDs[i])
	}
	assert.NotZero(t, itemIDs[0])
	assertOneSuccess(t, vendorErrs)

	vid, err := s.GetVID("Café Noir")
	require.NoError(t, err)

	start = make(chan struct{})
	dishErrs := make([]error, workers)
	race(func(i int) { _, dishErrs[i] = s.AddDish(itemIDs[0], vid, 7.5) })
	close(start)
	wg.Wait()
	assertOneSuccess(t, dishErrs)

	for _, c := range []struct {
		model any
		query string
		arg   any
	}{
		{&models.Item{}, "name = ?", "Crème Brûlée"},
		{&models.Vendor{}, "name = ?", "Café Noir"},
		{&models.Dish{}, "vendor_id = ?", vid},
	} {
		var n int64
		require.NoError(t, s.DB().Model(c.model).Where(c.query, c.arg).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	}
}

func assertOneSuccess(t *testing.T, errs []error) {
	t.Helper()
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, database.ErrAlreadyExists)
	}
	assert.Equal(t, 1, ok)
}
