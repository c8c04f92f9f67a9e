package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBillStore struct {
	bills   map[string]*entity.Bill
	listErr error
}

func newFakeBillStore(bills ...*entity.Bill) *fakeBillStore {
	s := &fakeBillStore{bills: make(map[string]*entity.Bill)}
	for _, b := range bills {
		s.bills[b.ID] = b
	}
	return s
}

func (s *fakeBillStore) Create(_ context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = "generated-id"
	}
	copied := *bill
	s.bills[bill.ID] = &copied
	return nil
}

func (s *fakeBillStore) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	bill, ok := s.bills[id]
	if !ok {
		return nil, nil
	}
	copied := *bill
	return &copied, nil
}

func (s *fakeBillStore) List(_ context.Context) ([]entity.Bill, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []entity.Bill{}
	for _, b := range s.bills {
		out = append(out, *b)
	}
	return out, nil
}

func (s *fakeBillStore) ListByEmail(_ context.Context, email string) ([]entity.Bill, error) {
	out := []entity.Bill{}
	for _, b := range s.bills {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *fakeBillStore) Update(_ context.Context, id string, bill *entity.Bill) error {
	if _, ok := s.bills[id]; !ok {
		return errors.New("not found")
	}
	copied := *bill
	copied.ID = id
	s.bills[id] = &copied
	return nil
}

func (s *fakeBillStore) Delete(_ context.Context, id string) error {
	delete(s.bills, id)
	return nil
}

type fakeProofStore struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *fakeProofStore) Save(fileName string, _ io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, fileName)
	return "http://localhost:5678/public/stored-" + fileName, nil
}

func (s *fakeProofStore) Delete(fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type fakeExporter struct{}

func (fakeExporter) Write(bills []entity.Bill, w io.Writer) error {
	_, err := w.Write([]byte("workbook"))
	return err
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T, bills BillStore, proofs ProofSaver) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	return NewRouter(RouterConfig{
		Bills:  NewBillsHandler(bills, proofs, fakeExporter{}, logger),
		Auth:   NewAuthHandler(nil, testSecret, time.Hour, logger),
		Users:  NewUsersHandler(nil, logger),
		Secret: testSecret,
		Logger: logger,
	})
}

func bearerFor(t *testing.T, email, userType string) string {
	t.Helper()
	token, err := GenerateToken(email, userType, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestListBills_EmployeeSeesOwnBillsOnly(t *testing.T) {
	store := newFakeBillStore(
		&entity.Bill{ID: "b1", Email: "a@billed.com", Status: entity.StatusPending},
		&entity.Bill{ID: "b2", Email: "b@billed.com", Status: entity.StatusPending},
	)
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	req.Header.Set("Authorization", bearerFor(t, "a@billed.com", entity.UserTypeEmployee))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []entity.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)
}

func TestListBills_AdminSeesAll(t *testing.T) {
	store := newFakeBillStore(
		&entity.Bill{ID: "b1", Email: "a@billed.com", Status: entity.StatusPending},
		&entity.Bill{ID: "b2", Email: "b@billed.com", Status: entity.StatusPending},
	)
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []entity.Bill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListBills_RequiresToken(t *testing.T) {
	router := newTestRouter(t, newFakeBillStore(), &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "authorization header is required", body["message"])
}

func multipartProof(t *testing.T, fieldFile, fileName, email string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldFile, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("email", email))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateBill_StoresProofAndReturnsKey(t *testing.T) {
	store := newFakeBillStore()
	proofs := &fakeProofStore{}
	router := newTestRouter(t, store, proofs)

	body, contentType := multipartProof(t, "file", "receipt.png", "a@billed.com")
	req := httptest.NewRequest(http.MethodPost, "/bills", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, "a@billed.com", entity.UserTypeEmployee))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created entity.CreatedBill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Key)
	assert.Equal(t, "http://localhost:5678/public/stored-receipt.png", created.FileURL)
	assert.Equal(t, []string{"receipt.png"}, proofs.saved)

	stored := store.bills[created.Key]
	require.NotNil(t, stored)
	assert.Equal(t, entity.StatusPending, stored.Status)
	assert.Equal(t, "a@billed.com", stored.Email)
	assert.Equal(t, entity.DefaultPct, stored.Pct)
}

func TestCreateBill_RejectsNonImageProof(t *testing.T) {
	proofs := &fakeProofStore{}
	router := newTestRouter(t, newFakeBillStore(), proofs)

	body, contentType := multipartProof(t, "file", "document.pdf", "a@billed.com")
	req := httptest.NewRequest(http.MethodPost, "/bills", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, "a@billed.com", entity.UserTypeEmployee))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, proofs.saved)
}

func TestUpdateBill_MergesIntoExisting(t *testing.T) {
	store := newFakeBillStore(&entity.Bill{
		ID:       "b1",
		Email:    "a@billed.com",
		Status:   entity.StatusPending,
		FileURL:  "http://localhost:5678/public/p.png",
		FileName: "p.png",
		Pct:      entity.DefaultPct,
	})
	router := newTestRouter(t, store, &fakeProofStore{})

	payload := `{"status":"accepted","commentAdmin":"ok"}`
	req := httptest.NewRequest(http.MethodPatch, "/bills/b1", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	stored := store.bills["b1"]
	assert.Equal(t, entity.StatusAccepted, stored.Status)
	assert.Equal(t, "ok", stored.CommentAdmin)
	// Fields absent from the patch keep their stored values.
	assert.Equal(t, "p.png", stored.FileName)
	assert.Equal(t, "a@billed.com", stored.Email)
}

func TestUpdateBill_RejectsUnknownStatus(t *testing.T) {
	store := newFakeBillStore(&entity.Bill{ID: "b1", Email: "a@billed.com", Status: entity.StatusPending})
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodPatch, "/bills/b1", bytes.NewBufferString(`{"status":"archived"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entity.StatusPending, store.bills["b1"].Status)
}

func TestUpdateBill_NotFound(t *testing.T) {
	router := newTestRouter(t, newFakeBillStore(), &fakeProofStore{})

	req := httptest.NewRequest(http.MethodPatch, "/bills/missing", bytes.NewBufferString(`{"status":"accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "bill not found", body["message"])
}

func TestDeleteBill_RemovesProof(t *testing.T) {
	store := newFakeBillStore(&entity.Bill{
		ID:      "b1",
		Email:   "a@billed.com",
		Status:  entity.StatusPending,
		FileURL: "http://localhost:5678/public/p.png",
	})
	proofs := &fakeProofStore{}
	router := newTestRouter(t, store, proofs)

	req := httptest.NewRequest(http.MethodDelete, "/bills/b1", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, store.bills)
	assert.Equal(t, []string{"http://localhost:5678/public/p.png"}, proofs.deleted)
}

func TestGetBill_ForbiddenForOtherEmployee(t *testing.T) {
	store := newFakeBillStore(&entity.Bill{ID: "b1", Email: "a@billed.com", Status: entity.StatusPending})
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills/b1", nil)
	req.Header.Set("Authorization", bearerFor(t, "b@billed.com", entity.UserTypeEmployee))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportBills_AdminOnly(t *testing.T) {
	store := newFakeBillStore(&entity.Bill{ID: "b1", Email: "a@billed.com", Status: entity.StatusPending})
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills/export", nil)
	req.Header.Set("Authorization", bearerFor(t, "a@billed.com", entity.UserTypeEmployee))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/bills/export", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "workbook", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bills.xlsx")
}

func TestListBills_StoreFailure(t *testing.T) {
	store := newFakeBillStore()
	store.listErr = errors.New("db down")
	router := newTestRouter(t, store, &fakeProofStore{})

	req := httptest.NewRequest(http.MethodGet, "/bills", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin@billed.com", entity.UserTypeAdmin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed to list bills", body["message"])
}
