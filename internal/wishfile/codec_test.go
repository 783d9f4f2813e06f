package wishfile

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minchan-k/cinelog/internal/models"
)

func sampleFolder() models.Wishlist {
	year := "2003"
	poster := "https://file.koreafilm.or.kr/poster1.jpg"
	plot := "15년의 감금, 5일의 추적"

	folder := models.NewWishlist("케이트가 볼 영화")
	folder.Movies = []models.StoredMovie{
		{
			ID:          uuid.New(),
			Title:       "올드보이",
			Directors:   []string{"박찬욱"},
			Actors:      []string{"최민식", "유지태"},
			ReleaseYear: &year,
			PosterURL:   &poster,
			Genres:      []string{"드라마", "스릴러"},
			Keywords:    []string{"복수", "감금"},
			PlotText:    &plot,
		},
		{
			ID:        uuid.New(),
			Title:     "살인의 추억",
			Directors: []string{"봉준호"},
			Actors:    []string{"송강호"},
			Genres:    []string{"범죄"},
			Keywords:  []string{},
		},
		{
			ID:        uuid.New(),
			Title:     "버닝",
			Directors: []string{"이창동"},
			Actors:    []string{"유아인"},
			Genres:    []string{"미스터리"},
			Keywords:  []string{},
		},
	}
	return folder
}

func TestRoundTrip(t *testing.T) {
	folder := sampleFolder()

	data, err := Export(folder)
	require.NoError(t, err)

	decoded, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, folder.ID, decoded.ID)
	assert.Equal(t, folder.Name, decoded.Name)
	require.Len(t, decoded.Movies, 3)
	for i, m := range folder.Movies {
		got := decoded.Movies[i]
		assert.Equal(t, m.ID, got.ID, "movie ids survive the round trip")
		assert.Equal(t, m.Title, got.Title)
		assert.Equal(t, m.Directors, got.Directors)
		assert.Equal(t, m.Actors, got.Actors)
		assert.Equal(t, m.ReleaseYear, got.ReleaseYear)
		assert.Equal(t, m.PosterURL, got.PosterURL)
		assert.Equal(t, m.Genres, got.Genres)
		assert.Equal(t, m.Keywords, got.Keywords)
		assert.Equal(t, m.PlotText, got.PlotText)
	}
}

func TestExportUsesDocumentFieldNames(t *testing.T) {
	data, err := Export(sampleFolder())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Contains(t, doc, "movies")
	movies := doc["movies"].([]any)
	first := movies[0].(map[string]any)

	// The sharing format uses singular keys.
	for _, key := range []string{"id", "title", "director", "actor", "genre", "keyword", "releaseYear", "poster", "plotText"} {
		assert.Contains(t, first, key)
	}
	assert.NotContains(t, first, "directors")
	assert.NotContains(t, first, "posterUrl")
}

func TestImportRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json at all`},
		{"wrong type for movies", `{"id":"` + uuid.NewString() + `","name":"n","movies":{}}`},
		{"bad folder id", `{"id":"nope","name":"n","movies":[]}`},
		{"missing name", `{"id":"` + uuid.NewString() + `","movies":[]}`},
		{"bad movie id", `{"id":"` + uuid.NewString() + `","name":"n","movies":[{"id":"x","title":"t","director":[],"actor":[],"genre":[],"keyword":[]}]}`},
		{"missing movie title", `{"id":"` + uuid.NewString() + `","name":"n","movies":[{"id":"` + uuid.NewString() + `","director":[],"actor":[],"genre":[],"keyword":[]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.data))
			assert.ErrorIs(t, err, ErrImport)
		})
	}
}

func TestReplaceKeepsDestinationIdentity(t *testing.T) {
	src := sampleFolder()
	dst := models.NewWishlist("old name")
	dst.Movies = []models.StoredMovie{{ID: uuid.New(), Title: "stale"}}
	dstID := dst.ID

	Replace(&dst, src)

	assert.Equal(t, dstID, dst.ID, "the destination keeps its own id")
	assert.Equal(t, src.Name, dst.Name)
	require.Len(t, dst.Movies, 3)

	// Deep copy: mutating the source must not reach the destination.
	src.Movies[0].Directors[0] = "changed"
	assert.Equal(t, "박찬욱", dst.Movies[0].Directors[0])
}
