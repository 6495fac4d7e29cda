package tenderportal

import (
	"context"
	"testing"
	"time"

	"tenderportal-backend/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNoticeDetail(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	portal := newFakePortal()
	client := newTestClient(t, portal)

	got, err := client.NoticeDetail(context.Background(), 13, 55, authSession())
	require.NoError(t, err)

	want := NoticeDetail{
		Id:                55,
		CustomId:          "HEL-2024-001",
		Unit:              "Rakennusvirasto",
		Flags:             []string{"national", "eu"},
		Title:             "Katujen talvikunnossapito",
		Types:             []string{"Hankintailmoitus", "Avoin menettely"},
		ShortDescription:  "Talvikunnossapito kaudelle 2024-2025",
		Deadline:          utc(2024, time.October, 15, 9, 0),
		OriginalDeadline:  "15.10.2024 12.00",
		Published:         utc(2024, time.September, 1, 7, 0),
		OriginalPublished: "1.9.2024 10.00",
		Description:       "<p>Pitkä kuvaus hankinnasta.</p>",
		AuthorityType:     "Kunta tai kuntayhtymä",
		Category:          "Palvelut",
		Attachments: []NoticeAttachment{
			{FileName: "tarjouspyynto.pdf", FileUuid: "a1b2-c3d4"},
			{FileName: "liite1.xlsx", FileUuid: "e5f6-a7b8"},
		},
		Links: []string{"https://example.com/docs"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("detail mismatch (-want +got):\n%s", diff)
	}

	// the processing page binds the notice server-side, so it must have been
	// the first request; the other two pages may land in either order
	portal.mu.Lock()
	requests := append([]string(nil), portal.requests...)
	portal.mu.Unlock()
	require.Len(t, requests, 3)
	require.Equal(t, processingPath, requests[0])
	require.ElementsMatch(t, []string{detailsPath, attachmentsPath}, requests[1:])
}

func TestNoticeDetailSparse(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	portal := newFakePortal()
	portal.sparseDetails = true
	client := newTestClient(t, portal)

	got, err := client.NoticeDetail(context.Background(), 13, 55, authSession())
	require.NoError(t, err)

	// no long description and no deadline is a legitimate notice shape
	require.Empty(t, got.Description)
	require.Nil(t, got.Deadline)
	require.Empty(t, got.OriginalDeadline)
	require.Equal(t, utc(2024, time.September, 1, 7, 0), got.Published)
}

func TestNoticeDetailWithoutAuth(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	client := newTestClient(t, newFakePortal())

	_, err := client.NoticeDetail(context.Background(), 13, 55,
		AuthenticatedSession{AnonymousSession: anonSession(), Token: "expired"})
	require.ErrorIs(t, err, ErrBadSession)
}

func TestAttachmentURL(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:tenderportal")
	defer cleanup()

	client := newTestClient(t, newFakePortal())

	url := client.AttachmentURL(NoticeAttachment{
		FileName: "tarjouspyynto.pdf",
		FileUuid: "a1b2-c3d4",
	})
	require.Equal(t, client.BaseUrl.String()+"/Attachment/Download?fileId=a1b2-c3d4", url)
}
