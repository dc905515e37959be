package tests

import (
	"net/http"
	"testing"
)

type predictionPayload struct {
	ID              int64   `json:"id"`
	Brand           string  `json:"brand"`
	ProcessorSpeed  float64 `json:"processor_speed"`
	RAMSize         int32   `json:"ram_size"`
	StorageCapacity int32   `json:"storage_capacity"`
	ScreenSize      float64 `json:"screen_size"`
	Weight          float64 `json:"weight"`
	PredictedPrice  float64 `json:"predicted_price"`
}

type predictData struct {
	PredictedPrice float64           `json:"predicted_price"`
	Prediction     predictionPayload `json:"prediction"`
}

type historyData struct {
	Predictions []predictionPayload `json:"predictions"`
}

var laptopRequest = map[string]any{
	"brand":            "Dell",
	"processor_speed":  3.2,
	"ram_size":         16,
	"storage_capacity": 512,
	"screen_size":      15.6,
	"weight":           1.8,
}

func TestPredict(t *testing.T) {
	t.Run("ScoreAndHistoryRoundtrip", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)
		username := uniqueName("predict")
		signup(t, c, username, username+"@example.com", "", "supersecret")

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/predictions", laptopRequest)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("predict returned %d: %s", status, body)
		}
		var data predictData
		decodeSuccess(t, body, &data)
		if data.PredictedPrice == 0 || data.Prediction.ID == 0 {
			t.Fatalf("unexpected predict payload: %+v", data)
		}

		status, body = c.doJSON(t, http.MethodGet, "/api/v1/predictions/history", nil)
		if status != http.StatusOK {
			t.Fatalf("history returned %d: %s", status, body)
		}
		var hist historyData
		decodeSuccess(t, body, &hist)
		if len(hist.Predictions) != 1 || hist.Predictions[0].ID != data.Prediction.ID {
			t.Fatalf("expected the fresh prediction in history, got %+v", hist.Predictions)
		}
	})

	t.Run("HistoryNewestFirst", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)
		username := uniqueName("history")
		signup(t, c, username, username+"@example.com", "", "supersecret")
		for range 3 {
			status, body := c.doJSON(t, http.MethodPost, "/api/v1/predictions", laptopRequest)
			if status != http.StatusOK {
				t.Fatalf("predict returned %d: %s", status, body)
			}
		}

		// Act
		status, body := c.doJSON(t, http.MethodGet, "/api/v1/predictions/history", nil)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("history returned %d: %s", status, body)
		}
		var hist historyData
		decodeSuccess(t, body, &hist)
		if len(hist.Predictions) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(hist.Predictions))
		}
		for i := 1; i < len(hist.Predictions); i++ {
			if hist.Predictions[i-1].ID < hist.Predictions[i].ID {
				t.Fatalf("expected newest first ordering, got %+v", hist.Predictions)
			}
		}
	})

	t.Run("UnknownBrand", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)
		username := uniqueName("brand")
		signup(t, c, username, username+"@example.com", "", "supersecret")
		req := map[string]any{}
		for k, v := range laptopRequest {
			req[k] = v
		}
		req["brand"] = "Commodore"

		// Act
		status, body := c.doJSON(t, http.MethodPost, "/api/v1/predictions", req)

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", status, body)
		}
		env := decodeError(t, body)
		if env.Error["available_brands"] == "" {
			t.Fatalf("expected available_brands detail, got %+v", env)
		}
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		// Arrange
		c := newAPIClient(t)

		// Act
		predictStatus, _ := c.doJSON(t, http.MethodPost, "/api/v1/predictions", laptopRequest)
		historyStatus, _ := c.doJSON(t, http.MethodGet, "/api/v1/predictions/history", nil)

		// Assert
		if predictStatus != http.StatusUnauthorized || historyStatus != http.StatusUnauthorized {
			t.Fatalf("expected 401s, got %d and %d", predictStatus, historyStatus)
		}
	})

	t.Run("HistoryIsScopedToOwner", func(t *testing.T) {
		// Arrange
		owner := newAPIClient(t)
		username := uniqueName("owner")
		signup(t, owner, username, username+"@example.com", "", "supersecret")
		status, body := owner.doJSON(t, http.MethodPost, "/api/v1/predictions", laptopRequest)
		if status != http.StatusOK {
			t.Fatalf("predict returned %d: %s", status, body)
		}

		other := newAPIClient(t)
		otherName := uniqueName("other")
		signup(t, other, otherName, otherName+"@example.com", "", "supersecret")

		// Act
		status, body = other.doJSON(t, http.MethodGet, "/api/v1/predictions/history", nil)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("history returned %d: %s", status, body)
		}
		var hist historyData
		decodeSuccess(t, body, &hist)
		if len(hist.Predictions) != 0 {
			t.Fatalf("expected an empty history for the other user, got %d rows", len(hist.Predictions))
		}
	})
}
