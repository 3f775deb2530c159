//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/formhub/formhub-go/models"
)

// TestTenantWorkflow walks the full lifecycle: the super admin creates
// a site and its admin, the admin publishes a form and opens it to a
// registered user, the user submits and the admin reads the responses.
func TestTenantWorkflow(t *testing.T) {
	root := login(t, "root@formhub.test", "rootpass").Token

	// Site creation is reserved to the super admin.
	site := decode[models.Site](t, doRequest(t, http.MethodPost, "/sites", root,
		map[string]string{"name": "Acme", "subdomain": "acme"}, http.StatusCreated))
	require.NotZero(t, site.ID)

	// Subdomain conflicts surface as 400.
	doRequest(t, http.MethodPost, "/sites", root,
		map[string]string{"name": "Acme Two", "subdomain": "acme"}, http.StatusBadRequest)

	admin := decode[models.User](t, doRequest(t, http.MethodPost, "/users", root, map[string]any{
		"email":    "admin@acme.test",
		"username": "acmeadmin",
		"password": "123456",
		"role":     "site_admin",
		"site_id":  site.ID,
	}, http.StatusCreated))
	require.Equal(t, models.RoleSiteAdmin, admin.Role)

	adminToken := login(t, "admin@acme.test", "123456").Token

	form := decode[models.Form](t, doRequest(t, http.MethodPost, "/forms", adminToken, map[string]any{
		"title":   "Onboarding",
		"site_id": site.ID,
		"fields": []map[string]any{
			{"id": "name", "label": "Name", "type": "text", "required": true},
			{"id": "subscribed", "label": "Subscribed", "type": "checkbox"},
		},
	}, http.StatusCreated))

	// Self registration lands in the user role.
	doRequest(t, http.MethodPost, "/register", "", map[string]any{
		"email":    "alice@acme.test",
		"username": "alice",
		"password": "123456",
		"site_id":  site.ID,
	}, http.StatusCreated)
	userToken := login(t, "alice@acme.test", "123456").Token

	// Users read forms but cannot create them.
	doRequest(t, http.MethodGet, fmt.Sprintf("/forms/%d", form.ID), userToken, nil, http.StatusOK)
	doRequest(t, http.MethodPost, "/forms", userToken, map[string]any{
		"title":   "Rogue",
		"site_id": site.ID,
		"fields":  []map[string]any{{"id": "x", "label": "X", "type": "text"}},
	}, http.StatusForbidden)

	resp := decode[models.FormResponse](t, doRequest(t, http.MethodPost,
		fmt.Sprintf("/forms/%d/submit", form.ID), userToken,
		map[string]any{"data": map[string]any{"name": "Alice", "subscribed": true}}, http.StatusCreated))
	require.NotZero(t, resp.ID)

	// Unknown field ids are rejected at write time.
	doRequest(t, http.MethodPost, fmt.Sprintf("/forms/%d/submit", form.ID), userToken,
		map[string]any{"data": map[string]any{"name": "Alice", "bogus": 1}}, http.StatusBadRequest)

	// Response listing is an admin view.
	doRequest(t, http.MethodGet, fmt.Sprintf("/forms/%d/responses", form.ID), userToken, nil, http.StatusForbidden)
	doRequest(t, http.MethodGet, fmt.Sprintf("/forms/%d/responses", form.ID), adminToken, nil, http.StatusOK)

	// Report generation returns the stored path.
	rec := doRequest(t, http.MethodPost,
		fmt.Sprintf("/forms/%d/responses/%d/report", form.ID, resp.ID), adminToken, nil, http.StatusOK)
	require.Contains(t, rec.Body.String(), "form_response_")
}

func TestCrossSiteIsolation(t *testing.T) {
	root := login(t, "root@formhub.test", "rootpass").Token

	siteA := decode[models.Site](t, doRequest(t, http.MethodPost, "/sites", root,
		map[string]string{"name": "North", "subdomain": "north"}, http.StatusCreated))
	siteB := decode[models.Site](t, doRequest(t, http.MethodPost, "/sites", root,
		map[string]string{"name": "South", "subdomain": "south"}, http.StatusCreated))

	doRequest(t, http.MethodPost, "/users", root, map[string]any{
		"email": "na@x.test", "username": "northadmin", "password": "123456",
		"role": "site_admin", "site_id": siteA.ID,
	}, http.StatusCreated)
	tokenA := login(t, "na@x.test", "123456").Token

	formB := decode[models.Form](t, doRequest(t, http.MethodPost, "/forms", root, map[string]any{
		"title":   "Southern survey",
		"site_id": siteB.ID,
		"fields":  []map[string]any{{"id": "q", "label": "Q", "type": "text"}},
	}, http.StatusCreated))

	// Rows in the other tenant look nonexistent, not forbidden.
	doRequest(t, http.MethodGet, fmt.Sprintf("/forms/%d", formB.ID), tokenA, nil, http.StatusNotFound)
	doRequest(t, http.MethodGet, fmt.Sprintf("/sites/%d", siteB.ID), tokenA, nil, http.StatusForbidden)
	doRequest(t, http.MethodGet, fmt.Sprintf("/sites/%d", siteA.ID), tokenA, nil, http.StatusOK)
}

func TestLoginErrorShapes(t *testing.T) {
	// Unknown email and wrong password return the same message.
	recUnknown := doRequest(t, http.MethodPost, "/login", "",
		map[string]string{"email": "nobody@x.test", "password": "123456"}, http.StatusUnauthorized)
	recWrong := doRequest(t, http.MethodPost, "/login", "",
		map[string]string{"email": "root@formhub.test", "password": "wrong"}, http.StatusUnauthorized)
	require.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
}

func TestTicketLifecycle(t *testing.T) {
	root := login(t, "root@formhub.test", "rootpass").Token

	site := decode[models.Site](t, doRequest(t, http.MethodPost, "/sites", root,
		map[string]string{"name": "West", "subdomain": "west"}, http.StatusCreated))

	doRequest(t, http.MethodPost, "/register", "", map[string]any{
		"email": "w1@x.test", "username": "westuser", "password": "123456", "site_id": site.ID,
	}, http.StatusCreated)
	userToken := login(t, "w1@x.test", "123456").Token

	ticket := decode[models.Ticket](t, doRequest(t, http.MethodPost, "/tickets", userToken, map[string]any{
		"title": "Cannot submit", "description": "Button does nothing", "priority": "high",
	}, http.StatusCreated))
	require.Equal(t, models.TicketStatusOpen, ticket.Status)

	// Partial update flips only the status.
	updated := decode[models.Ticket](t, doRequest(t, http.MethodPut,
		fmt.Sprintf("/tickets/%d", ticket.ID), userToken,
		map[string]any{"status": "resolved"}, http.StatusOK))
	require.Equal(t, models.TicketStatusResolved, updated.Status)
	require.Equal(t, "Cannot submit", updated.Title)
	require.Equal(t, models.TicketPriorityHigh, updated.Priority)

	// Filers cannot delete their tickets.
	doRequest(t, http.MethodDelete, fmt.Sprintf("/tickets/%d", ticket.ID), userToken, nil, http.StatusForbidden)
	doRequest(t, http.MethodDelete, fmt.Sprintf("/tickets/%d", ticket.ID), root, nil, http.StatusNoContent)
}
