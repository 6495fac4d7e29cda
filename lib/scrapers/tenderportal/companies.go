package tenderportal

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"tenderportal-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Company struct {
	Id   int
	Slug string
	Name string
	// Base64-encoded logo image, only populated by CompanyLogo
	Logo string
}

const logoPathMarker = logoPath + "/"

func companyFromCell(cell *goquery.Selection) (Company, error) {
	src := cell.Find("img").AttrOr("src", "")
	idx := strings.LastIndex(src, logoPathMarker)
	if idx < 0 {
		return Company{}, fmt.Errorf(
			"%w: company cell image %q carries no id", ErrRequiredField, src,
		)
	}
	id, err := strconv.Atoi(src[idx+len(logoPathMarker):])
	if err != nil || id < 0 {
		return Company{}, fmt.Errorf(
			"%w: could not parse company id from image %q", ErrRequiredField, src,
		)
	}

	href := cell.Find("a").AttrOr("href", "")
	slug := href[strings.LastIndex(href, "/")+1:]
	if slug == "" {
		return Company{}, fmt.Errorf(
			"%w: company cell link %q carries no slug", ErrRequiredField, href,
		)
	}

	name := htmlutil.CleanText(cell.Find("span.caption").Text())
	if name == "" {
		return Company{}, fmt.Errorf(
			"%w: company cell for %q has no caption", ErrRequiredField, slug,
		)
	}

	return Company{Id: id, Slug: slug, Name: name}, nil
}

// Companies lists every company on the portal index page. Logos are not
// fetched here; that is one extra request per company, call CompanyLogo for
// the ones that need it.
func (c *Client) Companies(ctx context.Context) ([]Company, error) {
	ctx, span := tracer.Start(ctx, "client:Companies")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(indexPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch index page")
		return nil, err
	}
	if err := expectOK(res, "index page"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "index page did not render")
		return nil, err
	}

	doc, err := document(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	var companies []Company
	doc.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		// spacer cells carry no style attribute or span multiple columns,
		// both are layout artifacts rather than data rows
		if _, styled := cell.Attr("style"); !styled {
			return true
		}
		if _, spacer := cell.Attr("colspan"); spacer {
			return true
		}

		var company Company
		company, err = companyFromCell(cell)
		if err != nil {
			return false
		}
		companies = append(companies, company)
		return true
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed company cell")
		return nil, err
	}

	span.SetAttributes(attribute.Int("company_count", len(companies)))
	return companies, nil
}

// CompanyLogo fetches and Base64-encodes a company's logo image.
func (c *Client) CompanyLogo(ctx context.Context, companyId int) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CompanyLogo")
	defer span.End()
	span.SetAttributes(attribute.Int("company_id", companyId))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%d", logoPath, companyId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch logo")
		return "", err
	}
	if err := expectOK(res, "company logo"); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "logo did not render")
		return "", err
	}

	return base64.StdEncoding.EncodeToString(res.Body()), nil
}
