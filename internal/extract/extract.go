package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"statutes/internal/bills"
	"statutes/internal/committees"
	"statutes/internal/logging"
	"statutes/internal/mods"
)

// ErrExtraction marks an item that cannot be converted: a missing bill
// reference, a missing law reference on a law-classified item, or a congress
// mismatch between the bill and law references. Fatal for the item only.
var ErrExtraction = errors.New("extraction failure")

// Volume carries the document-level identity shared by all items of one
// STATUTE volume.
type Volume struct {
	Congress  string
	PackageID string
}

// Record is the output of one successfully extracted item.
type Record struct {
	Bill    bills.Bill
	Version bills.Version
	PDFURL  string
}

// Extractor classifies embedded items and assembles bill records from them.
type Extractor struct {
	committees *committees.Cache
	logger     *slog.Logger
	titleCaser cases.Caser
}

// New builds an Extractor. The committee cache may be nil when committee ID
// resolution is disabled.
func New(committeeCache *committees.Cache, logger *slog.Logger) *Extractor {
	return &Extractor{
		committees: committeeCache,
		logger:     logging.NewComponentLogger(logger, "extract"),
		titleCaser: cases.Title(language.AmericanEnglish),
	}
}

// Item classifies one embedded item and, when it qualifies, extracts and
// assembles its bill record and version stub. A (nil, nil) return means the
// item was skipped without error: a non-processable granule class or a
// constitutional-amendment ratification notice.
func (e *Extractor) Item(ctx context.Context, item mods.Node, vol Volume) (*Record, error) {
	// GPO doubles quote characters inside titles.
	title := strings.ReplaceAll(item.Text("titleInfo/title"), `""`, `"`)

	class := ParseClass(item.Text("extension/granuleClass"))
	if !class.Processable() {
		return nil, nil
	}

	accessID := item.Text("extension/accessId")
	granuleDate := item.Text("extension/granuleDate")

	if class == ClassConstAmend {
		// Only proposals become records; ratification notices describe an
		// amendment proposed by an earlier congress.
		if item.Text("extension/isProposedAmendment") != "true" {
			e.logger.Info("skipping ratification notice",
				logging.String(logging.FieldAccessID, accessID),
				logging.String("title", title))
			return nil, nil
		}
	}

	committeeList := e.extractCommittees(ctx, item, vol, accessID)

	billRef, err := e.extractBillRef(item, accessID, title)
	if err != nil {
		return nil, err
	}
	billID := bills.ID(billRef.billType, billRef.number, billRef.congress)

	actions, err := e.extractActions(item, class, billRef, billID, title, granuleDate)
	if err != nil {
		return nil, err
	}

	var subject *string
	if descriptor := item.Text("extension/descriptor"); descriptor != "" {
		subject = &descriptor
	}

	source := bills.Source{
		AccessID:  accessID,
		PackageID: vol.PackageID,
		Page:      item.Text("part[@type='article']/extent[@unit='pages']/start"),
		Position:  item.Text("extension/pagePosition"),
		Name:      "statutes",
		URL:       item.Text("location/url[@displayLabel='Content Detail']"),
		Volume:    item.Text("extension/volume"),
	}

	pdfURL := item.Text("location/url[@displayLabel='PDF rendition']")

	return e.assemble(assembleInput{
		billRef:    billRef,
		billID:     billID,
		title:      title,
		subject:    subject,
		committees: committeeList,
		actions:    actions,
		source:     source,
		pdfURL:     pdfURL,
	}), nil
}

type billRef struct {
	congress string
	billType string
	number   string
}

func (e *Extractor) extractBillRef(item mods.Node, accessID, title string) (billRef, error) {
	refs := item.FindAll("extension/bill")
	if len(refs) == 0 {
		return billRef{}, fmt.Errorf("%w: no bill data for %s: %s", ErrExtraction, accessID, title)
	}
	if len(refs) > 1 {
		// Data anomaly, not an error: the first reference wins.
		e.logger.Warn("multiple bills associated with item",
			logging.String(logging.FieldAccessID, accessID),
			logging.Int("count", len(refs)))
	}
	ref := refs[0]
	return billRef{
		congress: ref.Attr("congress"),
		billType: strings.ToLower(ref.Attr("type")),
		number:   ref.Attr("number"),
	}, nil
}

func (e *Extractor) extractActions(item mods.Node, class Class, ref billRef, billID, title, granuleDate string) ([]bills.Action, error) {
	laws := item.FindAll("extension/law")

	if len(laws) == 0 {
		if class.IsLaw() {
			return nil, fmt.Errorf("%w: no law data for %s: %s", ErrExtraction, billID, title)
		}
		return e.voteAction(item, class, billID, granuleDate)
	}

	if len(laws) > 1 {
		e.logger.Warn("multiple laws associated with item",
			logging.String(logging.FieldBillID, billID),
			logging.Int("count", len(laws)))
	}
	law := laws[0]

	lawCongress := law.Attr("congress")
	lawNumber := law.Attr("number")
	lawType := bills.LawTypePublic
	if law.Attr("isPrivate") == "true" {
		lawType = bills.LawTypePrivate
	}

	// Typos happen in the metadata; a law citing a different congress than
	// the bill poisons the composite identifiers, so the item is dropped.
	if lawCongress != ref.congress {
		return nil, fmt.Errorf("%w: congress mismatch for %s%s: %s or %s?",
			ErrExtraction, ref.billType, ref.number, ref.congress, lawCongress)
	}

	action := bills.Action{
		ActedAt:    granuleDate,
		Congress:   lawCongress,
		Law:        lawType,
		Number:     lawNumber,
		References: []string{},
		// The metadata cannot distinguish signature from veto override, so
		// every statute is recorded as signed.
		Status: bills.StatusEnactedSigned,
		Text: fmt.Sprintf("Became %s Law No: %s-%s.",
			e.titleCaser.String(lawType), lawCongress, lawNumber),
		Type: bills.ActionEnacted,
	}
	return []bills.Action{action}, nil
}

// voteAction approximates passage for resolutions and proposed amendments:
// the enactment record proves both chambers passed the item, so the final
// recorded vote belongs to the chamber opposite the origin chamber.
func (e *Extractor) voteAction(item mods.Node, class Class, billID, granuleDate string) ([]bills.Action, error) {
	var where string
	switch item.Text("extension/originChamber") {
	case "HOUSE":
		where = "s"
	case "SENATE":
		where = "h"
	default:
		return nil, fmt.Errorf("%w: unknown origin chamber for %s", ErrExtraction, billID)
	}

	action := bills.Action{
		ActedAt:    granuleDate,
		How:        "unknown",
		References: []string{},
		Result:     "pass",
		Status:     class.VoteStatus(),
		Type:       bills.ActionVote,
		VoteType:   "vote2",
		Where:      where,
	}
	return []bills.Action{action}, nil
}

func (e *Extractor) extractCommittees(ctx context.Context, item mods.Node, vol Volume, accessID string) []bills.Committee {
	list := []bills.Committee{}

	node := item.Find("extension/congCommittee")
	if node.Zero() {
		return list
	}

	var chamber string
	switch node.Attr("chamber") {
	case "H":
		chamber = "House"
	case "S":
		chamber = "Senate"
	case "J":
		chamber = "Joint"
	default:
		e.logger.Warn("unknown committee chamber code",
			logging.String(logging.FieldAccessID, accessID),
			logging.String("chamber", node.Attr("chamber")))
		return list
	}

	name := chamber + " " + node.Text("name")

	committee := bills.Committee{
		Activity: []string{},
		Name:     name,
	}
	if e.committees != nil {
		if id, ok := e.committees.Resolve(ctx, vol.Congress, name); ok {
			committee.ID = &id
		}
	}

	return append(list, committee)
}
