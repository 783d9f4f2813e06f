package kmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawOldboy = `{
	"title": " !HS 올드보이 !HE ",
	"directors": {"director": [{"directorNm": "박찬욱"}]},
	"actors": {"actor": [{"actorNm": " !HS 최민식 !HE "}, {"actorNm": "유지태"}]},
	"plots": {"plot": [
		{"plotLang": "한국어", "plotText": "15년의 감금, 5일의 추적"},
		{"plotLang": "영어", "plotText": "Fifteen years of imprisonment"}
	]},
	"genre": "드라마,스릴러",
	"keywords": "복수,감금",
	"posters": "http://file.koreafilm.or.kr/poster1.jpg|http://file.koreafilm.or.kr/poster2.jpg",
	"stlls": "http://file.koreafilm.or.kr/still1.jpg|http://file.koreafilm.or.kr/still2.jpg",
	"prodYear": "2003"
}`

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte(rawOldboy))
	require.NoError(t, err)

	assert.Equal(t, "올드보이", rec.Title)
	assert.NotContains(t, rec.Title, " !HS ")
	assert.NotContains(t, rec.Title, " !HE ")

	assert.Equal(t, []string{"박찬욱"}, rec.Directors)
	assert.Equal(t, []string{"최민식", "유지태"}, rec.Actors)

	require.NotNil(t, rec.PosterURL)
	assert.Equal(t, "https://file.koreafilm.or.kr/poster1.jpg", *rec.PosterURL)
	require.NotNil(t, rec.StillURL)
	assert.Equal(t, "https://file.koreafilm.or.kr/still1.jpg", *rec.StillURL)

	assert.Equal(t, []string{"드라마", "스릴러"}, rec.Genres)
	assert.Equal(t, []string{"복수", "감금"}, rec.Keywords)

	// First plot entry wins regardless of language.
	require.NotNil(t, rec.PlotText)
	assert.Equal(t, "15년의 감금, 5일의 추적", *rec.PlotText)

	require.NotNil(t, rec.ReleaseYear)
	assert.Equal(t, "2003", *rec.ReleaseYear)
}

func TestDecodeRecordMintsLocalID(t *testing.T) {
	a, err := DecodeRecord([]byte(rawOldboy))
	require.NoError(t, err)
	b, err := DecodeRecord([]byte(rawOldboy))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestDecodeRecordURLInvariants(t *testing.T) {
	rec, err := DecodeRecord([]byte(rawOldboy))
	require.NoError(t, err)

	for _, u := range []*string{rec.PosterURL, rec.StillURL} {
		require.NotNil(t, u)
		assert.False(t, strings.HasPrefix(*u, "http://"))
		assert.NotContains(t, *u, "|")
	}
}

func TestDecodeRecordMissingKeywords(t *testing.T) {
	raw := strings.Replace(rawOldboy, `"keywords": "복수,감금",`, "", 1)
	rec, err := DecodeRecord([]byte(raw))
	require.NoError(t, err)

	assert.NotNil(t, rec.Keywords)
	assert.Empty(t, rec.Keywords)
}

func TestDecodeRecordEmptyImages(t *testing.T) {
	raw := strings.Replace(rawOldboy, `"posters": "http://file.koreafilm.or.kr/poster1.jpg|http://file.koreafilm.or.kr/poster2.jpg",`, `"posters": "",`, 1)
	rec, err := DecodeRecord([]byte(raw))
	require.NoError(t, err)

	assert.Nil(t, rec.PosterURL)
}

func TestDecodeRecordRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{"missing directors", `"directors": {"director": [{"directorNm": "박찬욱"}]},`},
		{"missing actors", `"actors": {"actor": [{"actorNm": " !HS 최민식 !HE "}, {"actorNm": "유지태"}]},`},
		{"missing genre", `"genre": "드라마,스릴러",`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := strings.Replace(rawOldboy, tt.remove, "", 1)
			_, err := DecodeRecord([]byte(raw))
			assert.ErrorIs(t, err, ErrDecode)
		})
	}

	t.Run("missing plots", func(t *testing.T) {
		raw := `{
			"title": "t",
			"directors": {"director": []},
			"actors": {"actor": []},
			"genre": "Drama"
		}`
		_, err := DecodeRecord([]byte(raw))
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("empty title", func(t *testing.T) {
		raw := strings.Replace(rawOldboy, `" !HS 올드보이 !HE "`, `" !HS  !HE "`, 1)
		_, err := DecodeRecord([]byte(raw))
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestSearchFlattensDataEntries(t *testing.T) {
	second := strings.Replace(rawOldboy, "올드보이", "친절한 금자씨", 1)
	third := strings.Replace(rawOldboy, "올드보이", "복수는 나의 것", 1)

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprintf(w, `{"Data":[{"Result":[%s,%s]},{"Result":[%s]}]}`, rawOldboy, second, third)
	}))
	defer srv.Close()

	client := NewClient(Config{ServiceKey: "test-key", BaseURL: srv.URL})

	records, err := client.Search(context.Background(), FilterDirector, "박찬욱")
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "올드보이", records[0].Title)
	assert.Equal(t, "친절한 금자씨", records[1].Title)
	assert.Equal(t, "복수는 나의 것", records[2].Title)

	assert.Contains(t, gotQuery, "director=")
	assert.Contains(t, gotQuery, "ServiceKey=test-key")
	assert.Contains(t, gotQuery, "detail=Y")
	assert.Contains(t, gotQuery, "collection=kmdb_new2")
}

func TestSearchSkipsUndecodableRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"Data":[{"Result":[%s,{"title":"no containers"}]}]}`, rawOldboy)
	}))
	defer srv.Close()

	client := NewClient(Config{ServiceKey: "k", BaseURL: srv.URL})

	records, err := client.Search(context.Background(), FilterTitle, "올드보이")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "올드보이", records[0].Title)
}

func TestSearchErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(Config{ServiceKey: "k", BaseURL: srv.URL})
		_, err := client.Search(context.Background(), FilterTitle, "q")
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("malformed envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"Data": "not a list"}`)
		}))
		defer srv.Close()

		client := NewClient(Config{ServiceKey: "k", BaseURL: srv.URL})
		_, err := client.Search(context.Background(), FilterTitle, "q")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("connection refused", func(t *testing.T) {
		client := NewClient(Config{ServiceKey: "k", BaseURL: "http://127.0.0.1:1"})
		_, err := client.Search(context.Background(), FilterTitle, "q")
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"title", FilterTitle},
		{"영화", FilterTitle},
		{"", FilterTitle},
		{"director", FilterDirector},
		{"감독", FilterDirector},
		{"actor", FilterActor},
		{"배우", FilterActor},
		{"keyword", FilterKeyword},
		{"키워드", FilterKeyword},
	}
	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFilter("plot")
	assert.Error(t, err)
}
