//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlow(t *testing.T) {
	// This test assumes the API server is running on localhost:8080
	// and connects to the same DB as the test runner for role promotion.

	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	var adminToken string
	var studentToken string
	var resourceID string
	var bookingID string

	registerAndLogin := func(t *testing.T, email, name string) string {
		payload := map[string]string{
			"email":     email,
			"password":  "password123",
			"full_name": name,
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		return result["access_token"].(string)
	}

	// 1. Register admin (self-registration always yields STUDENT, promote via DB)
	t.Run("Register Admin", func(t *testing.T) {
		registerAndLogin(t, "admin@campus.edu", "Admin User")

		_, err := env.DB.Exec("UPDATE users SET role = 'ADMIN' WHERE email = $1", "admin@campus.edu")
		require.NoError(t, err)

		payload := map[string]string{
			"email":    "admin@campus.edu",
			"password": "password123",
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		adminToken = result["access_token"].(string)
	})

	// 2. Register student
	t.Run("Register Student", func(t *testing.T) {
		studentToken = registerAndLogin(t, "student@campus.edu", "Student User")
	})

	// 3. Admin creates a lab
	t.Run("Create Resource", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":     "Physics Lab",
			"type":     "LAB",
			"capacity": 30,
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/resources", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+adminToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		resourceID = result["id"].(string)
	})

	// 4. Student cannot create resources
	t.Run("Student Cannot Create Resource", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":     "Rogue Lab",
			"type":     "LAB",
			"capacity": 10,
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/resources", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+studentToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	// 5. Student books the lab, lands in PENDING
	t.Run("Create Booking", func(t *testing.T) {
		payload := map[string]interface{}{
			"resource_id":  resourceID,
			"booking_date": "2026-09-15",
			"start_time":   "10:00",
			"end_time":     "10:45",
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/bookings", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+studentToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		bookingID = result["id"].(string)
		assert.Equal(t, "PENDING", result["status"])
	})

	// 6. Over-cap student booking is refused
	t.Run("Student Duration Cap", func(t *testing.T) {
		payload := map[string]interface{}{
			"resource_id":  resourceID,
			"booking_date": "2026-09-16",
			"start_time":   "10:00",
			"end_time":     "12:00",
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/bookings", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+studentToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "STUDENT_DURATION_EXCEEDED", result["code"])
	})

	// 7. Admin approves
	t.Run("Approve Booking", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("%s/bookings/%s/approve", baseURL, bookingID), nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "APPROVED", result["status"])
	})

	// 8. Overlapping booking conflicts with the approved slot
	t.Run("Slot Conflict", func(t *testing.T) {
		payload := map[string]interface{}{
			"resource_id":  resourceID,
			"booking_date": "2026-09-15",
			"start_time":   "10:30",
			"end_time":     "11:00",
		}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/bookings", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+studentToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "SLOT_CONFLICT", result["code"])
	})

	// 9. Availability reflects the occupied slot
	t.Run("Availability", func(t *testing.T) {
		req, _ := http.NewRequest("GET",
			fmt.Sprintf("%s/resources/%s/availability?date=2026-09-15", baseURL, resourceID), nil)
		req.Header.Set("Authorization", "Bearer "+studentToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		slots := result["occupied"].([]interface{})
		require.Len(t, slots, 1)

		slot := slots[0].(map[string]interface{})
		assert.Equal(t, "10:00", slot["start_time"])
		assert.Equal(t, "10:45", slot["end_time"])
	})

	// 10. Requester sees a notification about the decision
	t.Run("Notification Delivered", func(t *testing.T) {
		req, _ := http.NewRequest("GET", baseURL+"/notifications/unread-count", nil)
		req.Header.Set("Authorization", "Bearer "+studentToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.GreaterOrEqual(t, result["count"].(float64), float64(1))
	})
}
