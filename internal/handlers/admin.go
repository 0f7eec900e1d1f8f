package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/txsim/internal/auth"
	"github.com/example/txsim/pkg/jsonutil"
)

// AdminHandler provides admin-only endpoints like creating API keys.
type AdminHandler struct {
	Store      auth.APIKeyCreator
	AdminToken string
}

func NewAdminHandler(store auth.APIKeyCreator, adminToken string) *AdminHandler {
	return &AdminHandler{Store: store, AdminToken: adminToken}
}

// createKeyRequest is the payload for key creation. An empty Key gets a
// random 32-byte hex value.
type createKeyRequest struct {
	Key   string `json:"key"`
	Owner string `json:"owner"`
}

type createKeyResponse struct {
	Key     string `json:"key"`
	Active  bool   `json:"active"`
	Owner   string `json:"owner,omitempty"`
	Created string `json:"created_at"`
}

// ServeHTTP handles POST /admin/create-key.
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonutil.JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if h.AdminToken == "" || r.Header.Get("X-Admin-Token") != h.AdminToken {
		jsonutil.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var req createKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.JSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}
	key := req.Key
	if key == "" {
		var b [32]byte
		_, _ = rand.Read(b[:])
		key = hex.EncodeToString(b[:])
	}
	if err := h.Store.Create(r.Context(), key, true, req.Owner); err != nil {
		jsonutil.JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	jsonutil.JSON(w, http.StatusOK, createKeyResponse{
		Key:     key,
		Active:  true,
		Owner:   req.Owner,
		Created: time.Now().UTC().Format(time.RFC3339),
	})
}
