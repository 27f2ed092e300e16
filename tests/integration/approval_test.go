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

func TestApprovalWorkflow(t *testing.T) {
	// Assumes the API server is running on localhost:8080.

	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	login := func(t *testing.T, email string) string {
		payload := map[string]string{
			"email":    email,
			"password": "password123",
		}
		body, _ := json.Marshal(payload)
		resp, err := client.Post(baseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		return result["access_token"].(string)
	}

	register := func(t *testing.T, email, name string) {
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
	}

	promote := func(t *testing.T, email, role string) {
		_, err := env.DB.Exec("UPDATE users SET role = $1 WHERE email = $2", role, email)
		require.NoError(t, err)
	}

	book := func(t *testing.T, token string, payload map[string]interface{}) (*http.Response, map[string]interface{}) {
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", baseURL+"/bookings", bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		return resp, result
	}

	var adminToken, staffToken, studentToken string
	var classroomID string
	var pendingID string

	t.Run("Setup Accounts", func(t *testing.T) {
		register(t, "admin2@campus.edu", "Admin Two")
		promote(t, "admin2@campus.edu", "ADMIN")
		adminToken = login(t, "admin2@campus.edu")

		register(t, "staff2@campus.edu", "Staff Two")
		promote(t, "staff2@campus.edu", "STAFF")
		staffToken = login(t, "staff2@campus.edu")

		register(t, "student2@campus.edu", "Student Two")
		studentToken = login(t, "student2@campus.edu")
	})

	t.Run("Setup Classroom", func(t *testing.T) {
		payload := map[string]interface{}{
			"name":     "Room 101",
			"type":     "CLASSROOM",
			"capacity": 40,
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
		classroomID = result["id"].(string)
	})

	// Staff NORMAL bookings skip the queue
	t.Run("Staff Auto-Approval", func(t *testing.T) {
		resp, result := book(t, staffToken, map[string]interface{}{
			"resource_id":  classroomID,
			"booking_date": "2026-10-01",
			"start_time":   "09:00",
			"end_time":     "11:00",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "APPROVED", result["status"])
	})

	// Staff MEETING bookings still queue for review
	t.Run("Staff Meeting Stays Pending", func(t *testing.T) {
		resp, result := book(t, staffToken, map[string]interface{}{
			"resource_id":  classroomID,
			"booking_date": "2026-10-02",
			"start_time":   "09:00",
			"end_time":     "10:00",
			"booking_type": "MEETING",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "PENDING", result["status"])
		pendingID = result["id"].(string)
	})

	t.Run("Student Cannot Review", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("%s/bookings/%s/approve", baseURL, pendingID), nil)
		req.Header.Set("Authorization", "Bearer "+studentToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Reject Requires Reason", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("%s/bookings/%s/reject", baseURL, pendingID), nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "REASON_REQUIRED", result["code"])
	})

	t.Run("Reject With Reason", func(t *testing.T) {
		payload := map[string]string{"remarks": "Room reserved for exams"}
		body, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", fmt.Sprintf("%s/bookings/%s/reject", baseURL, pendingID), bytes.NewBuffer(body))
		req.Header.Set("Authorization", "Bearer "+adminToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "REJECTED", result["status"])
		assert.Equal(t, "Room reserved for exams", result["remarks"])
	})

	t.Run("Decision Is Final", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("%s/bookings/%s/approve", baseURL, pendingID), nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ALREADY_PROCESSED", result["code"])
	})
}
