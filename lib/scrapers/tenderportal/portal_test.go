package tenderportal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePortal replays the portal's observed behavior: redirect-only
// signalling, WebForms state echoes and session-bound detail pages.
type fakePortal struct {
	mu             sync.Mutex
	requests       []string
	boundNotice    string
	culture        string
	refuseLanguage bool
	hasTender      bool
	failRemoval    bool
	sparseDetails  bool
	// overrides the notices page body when non-empty
	noticesFixture string
}

func newFakePortal() *fakePortal {
	return &fakePortal{culture: "fi-FI"}
}

func (p *fakePortal) record(r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, r.URL.Path)
}

func (p *fakePortal) authenticated(r *http.Request) bool {
	cookie, err := r.Cookie(authCookieName)
	return err == nil && cookie.Value == "token-1"
}

func (p *fakePortal) hasSession(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookiePrefix)
	return err == nil && cookie.Value == "sess-1"
}

func redirect(w http.ResponseWriter, target string) {
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

const companyPageFixture = `<html><head><script>
var portalConfig = { culture: "%s", version: 3 };
</script></head><body>
<form method="post" action="/Default/Index">
<input type="hidden" id="__VIEWSTATE" name="__VIEWSTATE" value="vs-blob" />
<input type="hidden" id="__EVENTVALIDATION" name="__EVENTVALIDATION" value="ev-blob" />
</form>
</body></html>`

func (p *fakePortal) serveSlug(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimPrefix(r.URL.Path, "/") {
	case "helsinki":
		http.SetCookie(w, &http.Cookie{Name: sessionCookiePrefix, Value: "sess-1"})
		redirect(w, "/Default/Index?pId=13&orgId=14&g=uuid-123")
	case "noid":
		// pathological redirect with no usable parameters
		redirect(w, "/Company/Landing?welcome=1")
	default:
		redirect(w, "/Default/Index")
	}
}

func (p *fakePortal) serveCompanyPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		p.servePostback(w, r)
		return
	}
	if r.URL.Query().Get("pId") == "" {
		fmt.Fprint(w, companyIndexFixture)
		return
	}
	if !p.hasSession(r) {
		redirect(w, "/Default/Index")
		return
	}
	p.mu.Lock()
	culture := p.culture
	p.mu.Unlock()
	fmt.Fprintf(w, companyPageFixture, culture)
}

func (p *fakePortal) servePostback(w http.ResponseWriter, r *http.Request) {
	if !p.hasSession(r) {
		redirect(w, "/Default/Index")
		return
	}
	if r.FormValue("__VIEWSTATE") != "vs-blob" ||
		r.FormValue("__EVENTVALIDATION") != "ev-blob" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if target := r.FormValue("__EVENTTARGET"); target != "" {
		requested := ""
		for lang, id := range languageEventTargets {
			if id == target {
				requested = string(lang)
				break
			}
		}
		if requested == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		p.mu.Lock()
		if !p.refuseLanguage {
			p.culture = requested
		}
		confirmed := p.culture
		p.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: cultureCookieName, Value: confirmed})
		redirect(w, "/Default/Index?pId="+r.URL.Query().Get("pId"))
		return
	}

	if r.FormValue("Header$Login$LoginButton") != "Kirjaudu" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if r.FormValue("Header$Login$UserName") == "hankkija" &&
		r.FormValue("Header$Login$Password") == "hunter2" {
		http.SetCookie(w, &http.Cookie{Name: authCookieName, Value: "token-1"})
		redirect(w, "/Default/Index?pId="+r.URL.Query().Get("pId"))
		return
	}
	// bad credentials re-render the login page with a 200
	p.mu.Lock()
	culture := p.culture
	p.mu.Unlock()
	fmt.Fprintf(w, companyPageFixture, culture)
}

func (p *fakePortal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.record(r)

	switch r.URL.Path {
	case "/Default/Index":
		p.serveCompanyPage(w, r)
	case "/Notice/Index":
		if !p.hasSession(r) {
			redirect(w, "/Default/Index")
			return
		}
		if p.noticesFixture != "" {
			fmt.Fprint(w, p.noticesFixture)
		} else {
			fmt.Fprint(w, noticesPageFixture)
		}
	case "/Notice/HandleRequest":
		if !p.authenticated(r) {
			redirect(w, "/Default/Index")
			return
		}
		p.mu.Lock()
		p.boundNotice = r.URL.Query().Get("noticeId")
		p.mu.Unlock()
		fmt.Fprint(w, processingPageFixture)
	case "/Notice/Details":
		if !p.authenticated(r) || !p.noticeBound() {
			redirect(w, "/Default/Index")
			return
		}
		if p.sparseDetails {
			fmt.Fprint(w, detailsSparseFixture)
		} else {
			fmt.Fprint(w, detailsPageFixture)
		}
	case "/Notice/Attachments":
		if !p.authenticated(r) || !p.noticeBound() {
			redirect(w, "/Default/Index")
			return
		}
		fmt.Fprint(w, attachmentsPageFixture)
	case "/Tender/InProgress":
		if !p.authenticated(r) {
			redirect(w, "/Default/Index")
			return
		}
		if p.hasTender {
			fmt.Fprint(w, tendersPageFixture)
		} else {
			fmt.Fprint(w, `<html><body><p>Ei keskeneräisiä tarjouksia.</p></body></html>`)
		}
	case "/Tender/Remove":
		if !p.authenticated(r) {
			redirect(w, "/Default/Index")
			return
		}
		if p.failRemoval {
			fmt.Fprint(w, `<html><body><div id="removalError">Poisto epäonnistui</div></body></html>`)
		} else {
			fmt.Fprint(w, `<html><body><p>Tarjous poistettu.</p></body></html>`)
		}
	case "/Image/42":
		w.Write([]byte("\x89PNG fake logo bytes"))
	default:
		p.serveSlug(w, r)
	}
}

func (p *fakePortal) noticeBound() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.boundNotice != ""
}

func newTestClient(t *testing.T, portal *fakePortal) *Client {
	server := httptest.NewServer(portal)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)
	return client
}

func anonSession() AnonymousSession {
	return AnonymousSession{Uuid: "uuid-123", Id: "sess-1"}
}

func authSession() AuthenticatedSession {
	return AuthenticatedSession{AnonymousSession: anonSession(), Token: "token-1"}
}
