package tenderportal

import (
	"context"
	"encoding/base64"
	"testing"

	"tenderportal-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestCompanies(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	client := newTestClient(t, newFakePortal())

	companies, err := client.Companies(context.Background())
	require.NoError(t, err)

	// the colspan spacer and the unstyled cell are layout, not companies
	require.Equal(t, []Company{
		{Id: 42, Slug: "acme", Name: "Acme Oy"},
		{Id: 13, Slug: "helsinki", Name: "Helsingin kaupunki"},
	}, companies)
}

func TestCompanyLogo(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	client := newTestClient(t, newFakePortal())

	logo, err := client.CompanyLogo(context.Background(), 42)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(logo)
	require.NoError(t, err)
	require.Equal(t, "\x89PNG fake logo bytes", string(raw))
}
