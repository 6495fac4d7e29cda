package tenderportal

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"

	"tenderportal-backend/lib/htmlutil"
	"tenderportal-backend/lib/locale"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type NoticeAttachment struct {
	FileName string
	FileUuid string
}

// NoticeDetail is the richer, three-page view of a notice. It supersedes the
// list form for the fields the two shapes share.
type NoticeDetail struct {
	Id                int
	CustomId          string
	Unit              string
	Flags             []string
	Title             string
	Types             []string
	ShortDescription  string
	IsBeingCorrected  bool
	Deadline          *time.Time
	OriginalDeadline  string
	Published         *time.Time
	OriginalPublished string
	// full HTML description, empty when the notice has none
	Description   string
	AuthorityType string
	Category      string
	Attachments   []NoticeAttachment
	Links         []string
}

// deadlines on the details page may carry a trailing timezone annotation in
// parentheses that the date parser must not see
var trailingParenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

func stripTimezoneAnnotation(raw string) string {
	return trailingParenthetical.ReplaceAllString(raw, "")
}

// AttachmentURL reconstructs the direct download link for an attachment.
func (c *Client) AttachmentURL(a NoticeAttachment) string {
	link := *c.BaseUrl
	link.Path = downloadPath
	link.RawQuery = url.Values{"fileId": {a.FileUuid}}.Encode()
	return link.String()
}

// visitProcessingPage binds the notice id to the server-side session. The
// details and attachments pages render for whichever notice was last bound,
// so this must complete before either of them is fetched.
func (c *Client) visitProcessingPage(
	ctx context.Context,
	companyId, noticeId int,
	session AuthenticatedSession,
) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParams(map[string]string{
			"noticeId": strconv.Itoa(noticeId),
			"pId":      strconv.Itoa(companyId),
		}).
		Get(processingPath)
	if err != nil {
		return nil, err
	}
	if err := expectOK(res, "notice processing page"); err != nil {
		return nil, err
	}
	return document(res)
}

func (c *Client) fetchDetailsPage(
	ctx context.Context,
	companyId int,
	session AuthenticatedSession,
) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		Get(detailsPath)
	if err != nil {
		return nil, err
	}
	if err := expectOK(res, "notice details page"); err != nil {
		return nil, err
	}
	return document(res)
}

func (c *Client) fetchAttachmentsPage(
	ctx context.Context,
	companyId int,
	session AuthenticatedSession,
) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		SetCookies(session.cookies()).
		SetQueryParam("pId", strconv.Itoa(companyId)).
		Get(attachmentsPath)
	if err != nil {
		return nil, err
	}
	if err := expectOK(res, "notice attachments page"); err != nil {
		return nil, err
	}
	return document(res)
}

func flagsAndTypes(doc *goquery.Document) (flags []string, types []string, err error) {
	icons := doc.Find("#noticeFlags img")
	for i := range icons.Nodes {
		flag, err := DecodeFlag(icons.Eq(i).AttrOr("src", ""))
		if err != nil {
			return nil, nil, err
		}
		flags = append(flags, flag)
	}

	tags := doc.Find("#noticeTypes span")
	for i := range tags.Nodes {
		types = append(types, htmlutil.CleanText(tags.Eq(i).Text()))
	}
	return flags, types, nil
}

func attachmentsAndLinks(ctx context.Context, doc *goquery.Document) (attachments []NoticeAttachment, links []string, err error) {
	downloads := htmlutil.GetAnchors(ctx, doc.Find(`a[href*="`+downloadPath+`"]`))
	for _, anchor := range downloads {
		uuid := queryParam(anchor.Href, "fileId")
		if uuid == "" {
			return nil, nil, fmt.Errorf(
				"%w: download link %q carries no file uuid", ErrRequiredField, anchor.Href,
			)
		}
		attachments = append(attachments, NoticeAttachment{
			FileName: anchor.Name,
			FileUuid: uuid,
		})
	}

	for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("#externalLinks a")) {
		links = append(links, anchor.Href)
	}
	return attachments, links, nil
}

// NoticeDetail joins the processing, details and attachments pages into one
// record. The processing page must be visited first (it binds the notice to
// the session server-side); the other two pages only depend on that binding,
// not on each other, so they are fetched concurrently.
func (c *Client) NoticeDetail(
	ctx context.Context,
	companyId, noticeId int,
	session AuthenticatedSession,
) (NoticeDetail, error) {
	ctx, span := tracer.Start(ctx, "client:NoticeDetail")
	defer span.End()
	span.SetAttributes(
		attribute.Int("company_id", companyId),
		attribute.Int("notice_id", noticeId),
	)

	processing, err := c.visitProcessingPage(ctx, companyId, noticeId, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to visit processing page")
		return NoticeDetail{}, err
	}

	lang, err := locale.Match(processing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to detect page locale")
		return NoticeDetail{}, err
	}

	flags, types, err := flagsAndTypes(processing)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode notice flags")
		return NoticeDetail{}, err
	}

	var (
		details     *goquery.Document
		attachments *goquery.Document
		errList     []error
		errLock     sync.Mutex
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		doc, err := c.fetchDetailsPage(ctx, companyId, session)
		errLock.Lock()
		defer errLock.Unlock()
		if err != nil {
			errList = append(errList, err)
			return
		}
		details = doc
	}()
	go func() {
		defer wg.Done()
		doc, err := c.fetchAttachmentsPage(ctx, companyId, session)
		errLock.Lock()
		defer errLock.Unlock()
		if err != nil {
			errList = append(errList, err)
			return
		}
		attachments = doc
	}()
	wg.Wait()

	if len(errList) > 0 {
		err := errors.Join(errList...)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch detail pages")
		return NoticeDetail{}, err
	}

	out := NoticeDetail{
		Id:    noticeId,
		Flags: flags,
		Types: types,
	}

	out.Unit = htmlutil.CleanText(details.Find("#unitName").Text())
	out.CustomId = htmlutil.CleanText(details.Find("#customId").Text())
	out.Title = stripUnitPrefix(
		htmlutil.CleanText(details.Find("#noticeTitle").Text()), out.Unit,
	)
	out.AuthorityType = htmlutil.CleanText(details.Find("#authorityType").Text())
	out.Category = htmlutil.CleanText(details.Find("#category").Text())

	short, _, corrected := correctionInfo(details.Find("#shortDescription"))
	out.ShortDescription = short
	out.IsBeingCorrected = corrected

	// a notice without a long description is legitimate
	if desc := details.Find("#description"); desc.Length() > 0 {
		html, err := desc.Html()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to render description html")
			return NoticeDetail{}, err
		}
		out.Description = html
	}

	out.Published, out.OriginalPublished, err = parseDeadline(
		stripTimezoneAnnotation(details.Find("#publishedDate").Text()), lang,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse published date")
		return NoticeDetail{}, err
	}

	out.Deadline, out.OriginalDeadline, err = parseDeadline(
		stripTimezoneAnnotation(details.Find("#deadlineDate").Text()), lang,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse deadline")
		return NoticeDetail{}, err
	}

	out.Attachments, out.Links, err = attachmentsAndLinks(ctx, attachments)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to extract attachments")
		return NoticeDetail{}, err
	}

	return out, nil
}
