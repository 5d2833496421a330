package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JHSeo-git/close-mountain-api/internal/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
)

// Identity holds the provider-confirmed result of an identity exchange.
type Identity struct {
	PrimaryEmail string
	DisplayName  string
}

// Verifier resolves an OAuth/access token pair into a verified primary email
// via the Google People API. The access token authenticates the call as a
// bearer credential; the oauth token rides along as a query credential —
// the redundancy is inherited from the provider's API.
type Verifier struct {
	baseURL string // overrides the People API endpoint when set (tests)
}

func NewVerifier(baseURL string) *Verifier {
	return &Verifier{baseURL: baseURL}
}

// Verify fetches the caller's profile and selects the primary email address.
// Provider rejections come back as *domain.APIError with the provider's own
// status code; transport faults surface as a generic internal error.
func (v *Verifier) Verify(ctx context.Context, oauthToken, accessToken string) (*Identity, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	if v.baseURL != "" {
		opts = append(opts, option.WithEndpoint(v.baseURL))
	}
	svc, err := people.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create people service: %w", err)
	}

	person, err := svc.People.Get("people/me").
		PersonFields("emailAddresses,names").
		Context(ctx).
		Do(googleapi.QueryParameter("oauth_token", oauthToken))
	if err != nil {
		return nil, mapProviderError(err)
	}

	if len(person.EmailAddresses) == 0 {
		return nil, domain.ErrNotFoundGoogleEmail()
	}
	var primary *people.EmailAddress
	for _, e := range person.EmailAddresses {
		if e.Metadata != nil && e.Metadata.Primary {
			primary = e
			break
		}
	}
	if primary == nil {
		return nil, domain.ErrNotFoundPrimaryGoogleEmail()
	}

	displayName := ""
	if len(person.Names) > 0 {
		displayName = person.Names[0].DisplayName
	}
	return &Identity{PrimaryEmail: primary.Value, DisplayName: displayName}, nil
}

// mapProviderError normalizes a People API failure: provider status code
// becomes the HTTP status, the first structured error detail becomes the
// message, with "Unknown error" as the fallback.
func mapProviderError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := ""
		if len(gerr.Errors) > 0 {
			msg = gerr.Errors[0].Message
		}
		if msg == "" {
			msg = gerr.Message
		}
		return domain.ErrGoogleAPI(gerr.Code, msg)
	}
	slog.Error("people api call failed", "err", err)
	return domain.ErrInternal()
}
