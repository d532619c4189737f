//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestContactHandler_Create_Success(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	input := contacts.ContactInput{Name: "Acme Corp", WalletAddress: testRecipient}
	mocks.contact.On("Create", mock.Anything, testUserID, input).
		Return(&contacts.Contact{ID: testContactID, OwnerID: testUserID, Name: "Acme Corp", WalletAddress: testRecipient}, nil)

	c, w := newTestContext(t, http.MethodPost, "/contacts", ContactRequest{Name: "Acme Corp", WalletAddress: testRecipient})
	handler.Create(asUser(c))

	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, testContactID, decode[ContactResponse](t, w).ID)
	mocks.contact.AssertExpectations(t)
}

func TestContactHandler_Create_InvalidAddress(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	c, w := newTestContext(t, http.MethodPost, "/contacts", ContactRequest{Name: "Acme Corp", WalletAddress: "0x1234"})
	handler.Create(asUser(c))

	assertStatus(t, w, http.StatusBadRequest)
	mocks.contact.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactHandler_Create_Duplicate(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("Create", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("%w: contact with this wallet address exists", apperr.ErrConflict))

	c, w := newTestContext(t, http.MethodPost, "/contacts", ContactRequest{Name: "Acme Corp", WalletAddress: testRecipient})
	handler.Create(asUser(c))

	assertStatus(t, w, http.StatusConflict)
}

func TestContactHandler_List_Query(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("List", mock.Anything, mock.MatchedBy(func(q *contacts.ContactQuery) bool {
		return q.OwnerID == testUserID && q.Name == "acme" && q.Limit == 10 && q.Offset == 20 &&
			q.SortBy == "created_at" && q.SortOrder == "desc"
	})).Return([]*contacts.Contact{{ID: testContactID, Name: "Acme Corp"}}, nil)

	c, w := newTestContext(t, http.MethodGet, "/contacts?name=acme&limit=10&offset=20&sortBy=created_at&sortOrder=desc", nil)
	handler.List(asUser(c))

	assertStatus(t, w, http.StatusOK)
	assert.Len(t, decode[[]ContactResponse](t, w), 1)
	mocks.contact.AssertExpectations(t)
}

func TestContactHandler_List_InvalidLimit(t *testing.T) {
	services, _ := newMockServices()
	handler := NewContactHandler(services.Contact)

	c, w := newTestContext(t, http.MethodGet, "/contacts?limit=ten", nil)
	handler.List(asUser(c))

	assertStatus(t, w, http.StatusBadRequest)
}

func TestContactHandler_List_Empty(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("List", mock.Anything, mock.Anything).Return([]*contacts.Contact{}, nil)

	c, w := newTestContext(t, http.MethodGet, "/contacts", nil)
	handler.List(asUser(c))

	assertStatus(t, w, http.StatusOK)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestContactHandler_GetByID_NotFound(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("GetByID", mock.Anything, testUserID, testContactID).
		Return(nil, fmt.Errorf("%w: contact %s", apperr.ErrNotFound, testContactID))

	c, w := newTestContext(t, http.MethodGet, "/contacts/"+testContactID, nil)
	handler.GetByID(withParam(asUser(c), "id", testContactID))

	assertStatus(t, w, http.StatusNotFound)
}

func TestContactHandler_Update(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("Update", mock.Anything, testUserID, testContactID, contacts.ContactInput{Name: "Acme Inc"}).
		Return(&contacts.Contact{ID: testContactID, Name: "Acme Inc"}, nil)

	c, w := newTestContext(t, http.MethodPut, "/contacts/"+testContactID, ContactRequest{Name: "Acme Inc"})
	handler.Update(withParam(asUser(c), "id", testContactID))

	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "Acme Inc", decode[ContactResponse](t, w).Name)
}

func TestContactHandler_DeleteByID(t *testing.T) {
	services, mocks := newMockServices()
	handler := NewContactHandler(services.Contact)

	mocks.contact.On("DeleteByID", mock.Anything, testUserID, testContactID).Return(nil)

	c, _ := newTestContext(t, http.MethodDelete, "/contacts/"+testContactID, nil)
	handler.DeleteByID(withParam(asUser(c), "id", testContactID))

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	mocks.contact.AssertExpectations(t)
}
