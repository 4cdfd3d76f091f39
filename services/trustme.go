package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"apply/config"
)

// TrustMe - сервис для работы с API электронного подписания TrustMe
type TrustMe struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewTrustMe создает новый сервис TrustMe
func NewTrustMe(cfg *config.Config) *TrustMe {
	return &TrustMe{
		baseURL: cfg.TrustMeBaseURL,
		apiKey:  cfg.TrustMeAPIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadResult результат отправки договора на подписание
type UploadResult struct {
	DocumentID string `json:"document_id"`
	URL        string `json:"url"`
}

// request делает запрос к TrustMe API
func (t *TrustMe) request(method, endpoint string, body interface{}) (*http.Response, error) {
	url := fmt.Sprintf("%s%s", t.baseURL, endpoint)
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	return t.client.Do(req)
}

// UploadContract отправляет договор на подписание.
// Возвращает идентификатор документа и ссылку на подписание.
func (t *TrustMe) UploadContract(contractNumber, fileLink, signerPhone string) (*UploadResult, error) {
	payload := map[string]interface{}{
		"contract_number": contractNumber,
		"file_url":        fileLink,
		"phone":           signerPhone,
	}

	resp, err := t.request("POST", "/api/v1/documents", payload)
	if err != nil {
		return nil, fmt.Errorf("trustme upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("trustme upload failed: %s", string(body))
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("trustme response decode failed: %w", err)
	}
	return &result, nil
}

// GetStatus запрашивает текущий статус документа у TrustMe
func (t *TrustMe) GetStatus(documentID string) (int, error) {
	resp, err := t.request("GET", "/api/v1/documents/"+documentID+"/status", nil)
	if err != nil {
		return 0, fmt.Errorf("trustme status failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("trustme status failed: %s", string(body))
	}

	var result struct {
		Status int `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("trustme response decode failed: %w", err)
	}
	return result.Status, nil
}

// Revoke отзывает документ с подписания (расторжение договора)
func (t *TrustMe) Revoke(documentID string) error {
	resp, err := t.request("POST", "/api/v1/documents/"+documentID+"/revoke", nil)
	if err != nil {
		return fmt.Errorf("trustme revoke failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("trustme revoke failed: %s", string(body))
	}
	return nil
}
