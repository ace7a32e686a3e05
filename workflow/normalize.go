package workflow

import (
	"strconv"
	"strings"
	"time"

	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/mmdatafocus/dwh_backend/utils"
)

// Field normalization is pure and per-row: a value either coerces to its
// target type or degrades to nil / "Unknown". No rule here ever returns an
// error or drops a row; the only rows excluded from a load are those whose
// identity key fails to parse, and that decision belongs to the caller.

// recencyEpoch is the recency assigned to rows whose create date failed to
// parse, so they never beat a row with a real date.
var recencyEpoch = time.Time{}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func parseIntField(p *string) *int {
	s := trimmed(p)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

func parseDateField(p *string) *time.Time {
	s := trimmed(p)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = utils.DateOnly(t)
			return &t
		}
	}
	return nil
}

// parseDateFromInt handles the sales feed's integer dates: the value must be
// an 8-digit YYYYMMDD number. The sentinel 0 and any other length coerce to
// nil before date parsing is even attempted.
func parseDateFromInt(p *string) *time.Time {
	s := trimmed(p)
	if len(s) != 8 {
		return nil
	}
	if _, err := strconv.Atoi(s); err != nil {
		return nil
	}
	t, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func maritalFromCode(p *string) models.MaritalStatus {
	switch strings.ToUpper(trimmed(p)) {
	case "S":
		return models.MaritalStatusSingle
	case "M":
		return models.MaritalStatusMarried
	default:
		return models.MaritalStatusUnknown
	}
}

func genderFromCode(p *string) models.Gender {
	switch strings.ToUpper(trimmed(p)) {
	case "F":
		return models.GenderFemale
	case "M":
		return models.GenderMale
	default:
		return models.GenderUnknown
	}
}

// genderFromWideCode accepts the ERP feed's spelled-out variants as well.
func genderFromWideCode(p *string) models.Gender {
	switch strings.ToUpper(trimmed(p)) {
	case "F", "FEMALE":
		return models.GenderFemale
	case "M", "MALE":
		return models.GenderMale
	default:
		return models.GenderUnknown
	}
}

func productLineFromCode(p *string) models.ProductLine {
	switch strings.ToUpper(trimmed(p)) {
	case "M":
		return models.ProductLineMountain
	case "R":
		return models.ProductLineRoad
	case "S":
		return models.ProductLineOtherSales
	case "T":
		return models.ProductLineTouring
	default:
		return models.ProductLineUnknown
	}
}

// countryFromCode expands known ISO codes to canonical names. Blank is
// "Unknown"; an unmapped non-blank code passes through trimmed, it is NOT
// collapsed to "Unknown" (the two cases are deliberately distinct).
func countryFromCode(p *string) string {
	s := trimmed(p)
	if s == "" {
		return "Unknown"
	}
	switch strings.ToUpper(s) {
	case "DE":
		return "Germany"
	case "US", "USA":
		return "United States"
	default:
		return s
	}
}

// CustomerCandidate is one normalized raw version of a customer, paired with
// the recency key the deduplicator ranks by.
type CustomerCandidate struct {
	Record  models.Customer
	Recency time.Time
}

// NormalizeCustomer coerces one bronze CRM customer row. The second return
// is false when the id fails integer coercion: such rows have no addressable
// identity and are excluded from the load.
func NormalizeCustomer(raw models.BronzeCrmCustInfo) (CustomerCandidate, bool) {
	id := parseIntField(raw.CstID)
	if id == nil {
		return CustomerCandidate{}, false
	}
	createdOn := parseDateField(raw.CstCreateDate)
	recency := recencyEpoch
	if createdOn != nil {
		recency = *createdOn
	}
	return CustomerCandidate{
		Record: models.Customer{
			ID:            *id,
			Key:           trimmed(raw.CstKey),
			FirstName:     trimmed(raw.CstFirstname),
			LastName:      trimmed(raw.CstLastname),
			MaritalStatus: maritalFromCode(raw.CstMaritalSts),
			Gender:        genderFromCode(raw.CstGndr),
			CreatedOn:     createdOn,
		},
		Recency: recency,
	}, true
}

// NormalizeProduct coerces one bronze CRM product row. The composite source
// key "CO-XX-PRODKEY" splits into the category id (first five characters,
// dashes to underscores) and the product key (everything after the sixth).
// Rows whose id fails integer coercion are excluded.
func NormalizeProduct(raw models.BronzeCrmPrdInfo) (models.Product, bool) {
	id := parseIntField(raw.PrdID)
	if id == nil {
		return models.Product{}, false
	}
	rawKey := trimmed(raw.PrdKey)
	categoryID := ""
	key := ""
	if len(rawKey) >= 5 {
		categoryID = strings.ReplaceAll(rawKey[:5], "-", "_")
	}
	if len(rawKey) > 6 {
		key = rawKey[6:]
	}
	return models.Product{
		ID:         *id,
		CategoryID: categoryID,
		Key:        key,
		Name:       trimmed(raw.PrdNm),
		Cost:       parseIntField(raw.PrdCost),
		Line:       productLineFromCode(raw.PrdLine),
		ValidFrom:  parseDateField(raw.PrdStartDt),
	}, true
}

// NormalizeSalesLine coerces one bronze sales row. The order number is a
// pass-through key, never validated, so every raw row yields a candidate.
func NormalizeSalesLine(raw models.BronzeCrmSalesDetails) models.SalesLine {
	return models.SalesLine{
		OrderNum:    trimmed(raw.SlsOrdNum),
		ProductKey:  trimmed(raw.SlsPrdKey),
		CustomerID:  parseIntField(raw.SlsCustID),
		OrderDate:   parseDateFromInt(raw.SlsOrderDt),
		ShipDate:    parseDateFromInt(raw.SlsShipDt),
		DueDate:     parseDateFromInt(raw.SlsDueDt),
		SalesAmount: parseIntField(raw.SlsSales),
		Quantity:    parseIntField(raw.SlsQuantity),
		UnitPrice:   parseIntField(raw.SlsPrice),
	}
}

// NormalizeCustomerDemo coerces one ERP demographics row. Legacy ids carry a
// "NAS" prefix that is stripped so the id joins to customer keys. A birth
// date after now (the run timestamp) is nulled.
func NormalizeCustomerDemo(raw models.BronzeErpCustAz12, now time.Time) models.CustomerDemo {
	cid := trimmed(raw.Cid)
	if strings.HasPrefix(strings.ToUpper(cid), "NAS") {
		cid = cid[3:]
	}
	birthDate := parseDateField(raw.Bdate)
	if birthDate != nil && birthDate.After(now) {
		birthDate = nil
	}
	return models.CustomerDemo{
		CustomerID: cid,
		BirthDate:  birthDate,
		Gender:     genderFromWideCode(raw.Gen),
	}
}

// NormalizeLocation coerces one ERP location row. Source ids arrive as
// "AW-00011"; the dash is removed for joining.
func NormalizeLocation(raw models.BronzeErpLocA101) models.Location {
	return models.Location{
		CustomerID: strings.ReplaceAll(trimmed(raw.Cid), "-", ""),
		Country:    countryFromCode(raw.Cntry),
	}
}

func NormalizeProductCategory(raw models.BronzeErpPxCatG1v2) models.ProductCategory {
	return models.ProductCategory{
		CategoryID:      trimmed(raw.CatID),
		Category:        trimmed(raw.Cat),
		Subcategory:     trimmed(raw.Subcat),
		MaintenanceFlag: trimmed(raw.Maintenance),
	}
}
