package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"trackside/training-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, a *API, attemptType string) model.AttemptCategory {
	t.Helper()

	category := model.AttemptCategory{
		AttemptType: attemptType,
		Place:       "Kyiv",
		Date:        time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, a.DB.Create(&category).Error)
	return category
}

func TestVideoCreate(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeCompetition)

	w := doJSON(a, http.MethodPost, "/api/videos",
		`{"category_id":`+itoa(category.ID)+`,"event_type":"jump","source_url":"https://cdn.example.com/a.mp4","result":"6.12","attempt_number":1,"place_in_protocol":4,"time":"16:40:00"}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusCreated, w.Code)

	var video model.AttemptVideo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &video))
	require.NotNil(t, video.PlaceInProtocol)
	assert.EqualValues(t, 4, *video.PlaceInProtocol)
	require.NotNil(t, video.AttemptTime)
	assert.Equal(t, "16:40:00", *video.AttemptTime)
}

func TestVideoCreateDropsProtocolPlaceForTrainings(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	w := doJSON(a, http.MethodPost, "/api/videos",
		`{"category_id":`+itoa(category.ID)+`,"event_type":"run","source_url":"https://cdn.example.com/b.mp4","result":"11.02","attempt_number":1,"place_in_protocol":2}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusCreated, w.Code)

	var video model.AttemptVideo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &video))
	assert.Nil(t, video.PlaceInProtocol)
}

func TestVideoCreateValidation(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	cases := []string{
		`{"category_id":` + itoa(category.ID) + `,"event_type":"swim","source_url":"https://cdn.example.com/a.mp4","result":"1","attempt_number":1}`,
		`{"category_id":` + itoa(category.ID) + `,"event_type":"run","source_url":"","result":"1","attempt_number":1}`,
		`{"category_id":` + itoa(category.ID) + `,"event_type":"run","source_url":"https://cdn.example.com/a.mp4","result":"","attempt_number":1}`,
		`{"category_id":` + itoa(category.ID) + `,"event_type":"run","source_url":"https://cdn.example.com/a.mp4","result":"1","attempt_number":0}`,
	}

	for _, body := range cases {
		w := doJSON(a, http.MethodPost, "/api/videos", body, []*http.Cookie{cookie})
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	// Pointing at a category that doesn't exist is a client error too
	w := doJSON(a, http.MethodPost, "/api/videos",
		`{"category_id":9999,"event_type":"run","source_url":"https://cdn.example.com/a.mp4","result":"1","attempt_number":1}`,
		[]*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVideoEdit(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	video := model.AttemptVideo{
		CategoryID:    category.ID,
		EventType:     model.EventTypeRun,
		SourceURL:     "https://cdn.example.com/old.mp4",
		Result:        "11.40",
		AttemptNumber: 1,
	}
	require.NoError(t, a.DB.Create(&video).Error)

	w := doJSON(a, http.MethodPut, "/api/videos/"+itoa(video.ID),
		`{"event_type":"run","source_url":"https://cdn.example.com/new.mp4","result":"11.02","attempt_number":2}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	var saved model.AttemptVideo
	require.NoError(t, a.DB.Where("id = ?", video.ID).First(&saved).Error)
	assert.Equal(t, "https://cdn.example.com/new.mp4", saved.SourceURL)
	assert.Equal(t, "11.02", saved.Result)
	assert.EqualValues(t, 2, saved.AttemptNumber)
	// Omitted category keeps the current one
	assert.Equal(t, category.ID, saved.CategoryID)
}

func TestVideoDeleteTakesAnnotationAlong(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	video := model.AttemptVideo{
		CategoryID:    category.ID,
		EventType:     model.EventTypeJump,
		SourceURL:     "https://cdn.example.com/a.mp4",
		Result:        "6.12",
		AttemptNumber: 1,
	}
	require.NoError(t, a.DB.Create(&video).Error)

	saveResp := doJSON(a, http.MethodPut, "/api/videos/"+itoa(video.ID)+"/annotations",
		`{"shapes":[{"type":"line","points":[0,0,10,10]}]}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, saveResp.Code)

	w := doJSON(a, http.MethodDelete, "/api/videos/"+itoa(video.ID), "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusNoContent, w.Code)

	var videos, annotations int64
	require.NoError(t, a.DB.Model(model.AttemptVideo{}).Where("id = ?", video.ID).Count(&videos).Error)
	require.NoError(t, a.DB.Model(model.VideoAnnotation{}).Where("video_id = ?", video.ID).Count(&annotations).Error)
	assert.EqualValues(t, 0, videos)
	assert.EqualValues(t, 0, annotations)
}

func TestVideoListOrdersByCategoryDate(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)

	older := seedCategory(t, a, model.AttemptTypeTraining)
	newer := model.AttemptCategory{
		AttemptType: model.AttemptTypeTraining,
		Place:       "Lviv",
		Date:        time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, a.DB.Create(&newer).Error)

	videos := []model.AttemptVideo{
		{CategoryID: older.ID, EventType: model.EventTypeRun, SourceURL: "https://cdn.example.com/old.mp4", Result: "11.40", AttemptNumber: 1},
		{CategoryID: newer.ID, EventType: model.EventTypeRun, SourceURL: "https://cdn.example.com/new.mp4", Result: "11.02", AttemptNumber: 1},
	}

	for i := range videos {
		require.NoError(t, a.DB.Create(&videos[i]).Error)
	}

	w := getJSON(a, "/api/videos", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	var listed []model.AttemptVideo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].CategoryID)
}

func TestAnnotationRoundTrip(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	video := model.AttemptVideo{
		CategoryID:    category.ID,
		EventType:     model.EventTypeThrow,
		SourceURL:     "https://cdn.example.com/t.mp4",
		Result:        "58.20",
		AttemptNumber: 1,
	}
	require.NoError(t, a.DB.Create(&video).Error)

	path := "/api/videos/" + itoa(video.ID) + "/annotations"

	// Nothing saved yet: an empty list, not a 404
	w := getJSON(a, path, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shapes":[]}`, w.Body.String())

	w = doJSON(a, http.MethodPut, path,
		`{"shapes":[{"type":"angle","points":[1,2,3,4,5,6]}]}`,
		[]*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(a, path, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shapes":[{"type":"angle","points":[1,2,3,4,5,6]}]}`, w.Body.String())

	// Saving again replaces rather than appends
	w = doJSON(a, http.MethodPut, path, `{"shapes":[]}`, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)

	w = getJSON(a, path, []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"shapes":[]}`, w.Body.String())

	var count int64
	require.NoError(t, a.DB.Model(model.VideoAnnotation{}).Where("video_id = ?", video.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAnnotationSaveRejectsNonList(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)
	category := seedCategory(t, a, model.AttemptTypeTraining)

	video := model.AttemptVideo{
		CategoryID:    category.ID,
		EventType:     model.EventTypeJump,
		SourceURL:     "https://cdn.example.com/a.mp4",
		Result:        "6.12",
		AttemptNumber: 1,
	}
	require.NoError(t, a.DB.Create(&video).Error)

	w := doJSON(a, http.MethodPut, "/api/videos/"+itoa(video.ID)+"/annotations",
		`{"shapes":{"type":"line"}}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnnotationUnknownVideo(t *testing.T) {
	a, _ := newTestAPI(t)
	cookie := authedSession(t, a)

	w := getJSON(a, "/api/videos/9999/annotations", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(a, http.MethodPut, "/api/videos/9999/annotations", `{"shapes":[]}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
