package tenderportal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tenderportal-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	sessionCookiePrefix = "ASP.NET_SessionId"
	authCookieName      = ".ASPXAUTH"
	cultureCookieName   = "culture"
)

// AnonymousSession is a browsing session tied to one company context,
// obtained from the slug redirect without credentials.
type AnonymousSession struct {
	Uuid string
	Id   string
}

// AuthenticatedSession escalates an anonymous session with the auth token
// cookie the portal hands out on a successful login. It is usable across
// companies.
type AuthenticatedSession struct {
	AnonymousSession
	Token string
}

// Session is either level of portal trust. Neither state expires within this
// model; staleness only ever shows up as an unexpected redirect on use.
type Session interface {
	cookies() []*http.Cookie
}

func (s AnonymousSession) cookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: sessionCookiePrefix, Value: s.Id},
	}
}

func (s AuthenticatedSession) cookies() []*http.Cookie {
	return append(
		s.AnonymousSession.cookies(),
		&http.Cookie{Name: authCookieName, Value: s.Token},
	)
}

// resolveSlug triggers the portal's slug-routing redirect. The Location
// target is the only place the numeric ids and the session uuid exist.
func (c *Client) resolveSlug(ctx context.Context, slug string) (*url.URL, *resty.Response, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Head("/" + slug)
	if err != nil {
		return nil, nil, err
	}
	if !restyutil.IsRedirect(res) {
		return nil, nil, fmt.Errorf(
			"%w: slug routing returned status %d instead of a redirect",
			ErrSessionAcquisition, res.StatusCode(),
		)
	}

	location, err := restyutil.RedirectLocation(res)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionAcquisition, err)
	}
	// a bare redirect to the index page is how the portal spells 404
	if location.Path == indexPath && location.RawQuery == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return location, res, nil
}

func idFromQuery(location *url.URL, param string) (int, error) {
	raw := location.Query().Get(param)
	if raw == "" {
		return 0, fmt.Errorf(
			"%w: redirect target %q carries no %s parameter",
			ErrSessionAcquisition, location.String(), param,
		)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf(
			"%w: could not parse %s=%q as an id",
			ErrSessionAcquisition, param, raw,
		)
	}
	return id, nil
}

func (c *Client) CompanyIDFromSlug(ctx context.Context, slug string) (int, error) {
	ctx, span := tracer.Start(ctx, "client:CompanyIDFromSlug")
	defer span.End()
	span.SetAttributes(attribute.String("slug", slug))

	location, _, err := c.resolveSlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve slug")
		return 0, err
	}
	return idFromQuery(location, "pId")
}

// ProcurementOrgIDFromSlug resolves the separate procurement organization
// identifier carried by the same redirect.
func (c *Client) ProcurementOrgIDFromSlug(ctx context.Context, slug string) (int, error) {
	ctx, span := tracer.Start(ctx, "client:ProcurementOrgIDFromSlug")
	defer span.End()
	span.SetAttributes(attribute.String("slug", slug))

	location, _, err := c.resolveSlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve slug")
		return 0, err
	}
	return idFromQuery(location, "orgId")
}

// GetSession obtains an anonymous session: the uuid rides the redirect
// target's query string, the session id a Set-Cookie header.
func (c *Client) GetSession(ctx context.Context, slug string) (AnonymousSession, error) {
	ctx, span := tracer.Start(ctx, "client:GetSession")
	defer span.End()
	span.SetAttributes(attribute.String("slug", slug))

	location, res, err := c.resolveSlug(ctx, slug)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to resolve slug")
		return AnonymousSession{}, err
	}

	uuid := location.Query().Get("g")
	if uuid == "" {
		err := fmt.Errorf("%w: redirect target carries no session uuid", ErrSessionAcquisition)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing session uuid")
		return AnonymousSession{}, err
	}

	cookie, ok := restyutil.ResponseCookiePrefix(res, sessionCookiePrefix)
	if !ok {
		err := fmt.Errorf("%w: no session id cookie was set", ErrSessionAcquisition)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing session id cookie")
		return AnonymousSession{}, err
	}

	return AnonymousSession{Uuid: uuid, Id: cookie.Value}, nil
}

// WebForms state fields the portal issues on every GET and demands back
// verbatim on the following POST.
type formState struct {
	viewState       string
	eventValidation string
}

func (c *Client) companyPageFormState(ctx context.Context, companyId int, session Session) (formState, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		Get(companyPath)
	if err != nil {
		return formState{}, err
	}
	if err := expectOK(res, "company page"); err != nil {
		return formState{}, err
	}

	doc, err := document(res)
	if err != nil {
		return formState{}, err
	}

	state := formState{
		viewState:       doc.Find("input#__VIEWSTATE").AttrOr("value", ""),
		eventValidation: doc.Find("input#__EVENTVALIDATION").AttrOr("value", ""),
	}
	if state.viewState == "" || state.eventValidation == "" {
		return formState{}, fmt.Errorf(
			"%w: company page form is missing its state fields", ErrRequiredField,
		)
	}
	return state, nil
}

// Login escalates an anonymous session through the two-step WebForms
// exchange. Success manifests only as a redirect carrying the auth token
// cookie; any rendered page means the credentials were rejected.
func (c *Client) Login(
	ctx context.Context,
	companyId int,
	username, password string,
	session AnonymousSession,
) (AuthenticatedSession, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()
	span.SetAttributes(attribute.Int("company_id", companyId))

	state, err := c.companyPageFormState(ctx, companyId, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login form state")
		return AuthenticatedSession{}, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		SetFormData(map[string]string{
			"__VIEWSTATE":           state.viewState,
			"__EVENTVALIDATION":     state.eventValidation,
			"Header$Login$UserName": username,
			"Header$Login$Password": password,
			// the button label doubles as a required field, an artifact of
			// the portal's form framework
			"Header$Login$LoginButton": "Kirjaudu",
		}).
		Post(companyPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login request failed")
		return AuthenticatedSession{}, err
	}

	if !restyutil.IsRedirect(res) {
		err := fmt.Errorf("%w: login returned status %d", ErrLoginFailed, res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "login rejected")
		return AuthenticatedSession{}, err
	}
	cookie, ok := restyutil.ResponseCookie(res, authCookieName)
	if !ok {
		err := fmt.Errorf("%w: login redirect carried no auth token cookie", ErrLoginFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing auth token cookie")
		return AuthenticatedSession{}, err
	}

	return AuthenticatedSession{
		AnonymousSession: session,
		Token:            cookie.Value,
	}, nil
}
