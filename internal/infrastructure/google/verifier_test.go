package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePeopleAPI serves a canned People API response and records the
// credentials the client presented.
type fakePeopleAPI struct {
	status int
	body   string

	gotAuthorization string
	gotOAuthToken    string
	gotPersonFields  string
}

func (f *fakePeopleAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.gotAuthorization = r.Header.Get("Authorization")
		f.gotOAuthToken = r.URL.Query().Get("oauth_token")
		f.gotPersonFields = r.URL.Query().Get("personFields")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	}
}

func verifyAgainst(t *testing.T, fake *fakePeopleAPI) (*Identity, error) {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	v := NewVerifier(srv.URL)
	return v.Verify(context.Background(), "the-oauth-token", "the-access-token")
}

func TestVerify_HappyPath(t *testing.T) {
	fake := &fakePeopleAPI{status: http.StatusOK, body: `{
		"resourceName": "people/1",
		"emailAddresses": [
			{"value": "secondary@x.com", "metadata": {"primary": false}},
			{"value": "primary@x.com", "metadata": {"primary": true}}
		],
		"names": [{"displayName": "Alice Example"}]
	}`}

	id, err := verifyAgainst(t, fake)
	require.NoError(t, err)
	assert.Equal(t, "primary@x.com", id.PrimaryEmail)
	assert.Equal(t, "Alice Example", id.DisplayName)

	// Both caller-supplied credentials must reach the provider.
	assert.Equal(t, "Bearer the-access-token", fake.gotAuthorization)
	assert.Equal(t, "the-oauth-token", fake.gotOAuthToken)
	assert.Equal(t, "emailAddresses,names", fake.gotPersonFields)
}

func TestVerify_NoEmails(t *testing.T) {
	fake := &fakePeopleAPI{status: http.StatusOK, body: `{"resourceName": "people/1"}`}

	_, err := verifyAgainst(t, fake)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NotFoundGoogleEmail", apiErr.Name)
	assert.Equal(t, 404, apiErr.Status)
}

func TestVerify_NoPrimaryEmail(t *testing.T) {
	fake := &fakePeopleAPI{status: http.StatusOK, body: `{
		"resourceName": "people/1",
		"emailAddresses": [{"value": "secondary@x.com", "metadata": {"primary": false}}]
	}`}

	_, err := verifyAgainst(t, fake)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NotFoundPrimaryGoogleEmail", apiErr.Name)
}

func TestVerify_ProviderRejection(t *testing.T) {
	fake := &fakePeopleAPI{status: http.StatusUnauthorized, body: `{
		"error": {
			"code": 401,
			"message": "Request had invalid authentication credentials.",
			"errors": [{"message": "Invalid Credentials", "reason": "authError"}]
		}
	}`}

	_, err := verifyAgainst(t, fake)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "GoogleApiError", apiErr.Name)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "Invalid Credentials", apiErr.Message)
}

func TestVerify_ProviderRejectionWithoutDetails(t *testing.T) {
	fake := &fakePeopleAPI{status: http.StatusForbidden, body: `{"error": {"code": 403}}`}

	_, err := verifyAgainst(t, fake)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "GoogleApiError", apiErr.Name)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, "Unknown error", apiErr.Message)
}
