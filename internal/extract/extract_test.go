package extract_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"statutes/internal/bills"
	"statutes/internal/committees"
	"statutes/internal/extract"
	"statutes/internal/logging"
	"statutes/internal/mods"
	"statutes/internal/testsupport"
)

type mapSource map[string]string

func (m mapSource) Fetch(ctx context.Context, congress string) (map[string]string, error) {
	return m, nil
}

func itemNode(t *testing.T, itemXML string) mods.Node {
	t.Helper()
	doc, err := mods.Parse(strings.NewReader(testsupport.ModsDocument("82", "STATUTE-65", itemXML)))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	items := doc.Items()
	if len(items) != 1 {
		t.Fatalf("expected one item in fixture, got %d", len(items))
	}
	return items[0]
}

type lawItemFixture struct {
	title         string
	class         string
	proposed      string
	originChamber string
	committee     string
	bills         string
	laws          string
}

func (s lawItemFixture) render() string {
	var b strings.Builder
	b.WriteString("<relatedItem>\n")
	fmt.Fprintf(&b, "<titleInfo><title>%s</title></titleInfo>\n", s.title)
	b.WriteString(`<location>
  <url displayLabel="Content Detail">https://www.govinfo.gov/app/details/STATUTE-65/STATUTE-65-Pg1</url>
  <url displayLabel="PDF rendition">https://www.govinfo.gov/content/pkg/STATUTE-65/pdf/STATUTE-65-Pg1.pdf</url>
</location>
<part type="article"><extent unit="pages"><start>1</start></extent></part>
<extension>
`)
	fmt.Fprintf(&b, "<granuleClass>%s</granuleClass>\n", s.class)
	b.WriteString("<accessId>STATUTE-65-Pg1</accessId>\n<granuleDate>1951-10-20</granuleDate>\n<descriptor>Revenue</descriptor>\n<volume>65</volume>\n<pagePosition>1</pagePosition>\n")
	if s.proposed != "" {
		fmt.Fprintf(&b, "<isProposedAmendment>%s</isProposedAmendment>\n", s.proposed)
	}
	if s.originChamber != "" {
		fmt.Fprintf(&b, "<originChamber>%s</originChamber>\n", s.originChamber)
	}
	if s.committee != "" {
		b.WriteString(s.committee + "\n")
	}
	b.WriteString(s.bills)
	b.WriteString(s.laws)
	b.WriteString("</extension>\n</relatedItem>")
	return b.String()
}

func defaultLawItem() lawItemFixture {
	return lawItemFixture{
		title:     "An Act to provide revenue.",
		class:     "PUBLICLAW",
		committee: `<congCommittee chamber="H"><name>Ways and Means</name></congCommittee>`,
		bills:     `<bill congress="82" type="HR" number="1"/>` + "\n",
		laws:      `<law congress="82" number="100" isPrivate="false"/>` + "\n",
	}
}

func newExtractor(names map[string]string) *extract.Extractor {
	var cache *committees.Cache
	if names != nil {
		cache = committees.NewCache(mapSource(names), nil, logging.NewNop())
	}
	return extract.New(cache, logging.NewNop())
}

var testVolume = extract.Volume{Congress: "82", PackageID: "STATUTE-65"}

func TestPublicLawItemProducesEnactedRecord(t *testing.T) {
	e := newExtractor(map[string]string{"House Ways and Means": "HSWM"})

	record, err := e.Item(context.Background(), itemNode(t, defaultLawItem().render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}

	bill := record.Bill
	if bill.BillID != "hr1-82" {
		t.Fatalf("unexpected bill id: %q", bill.BillID)
	}
	if bill.BillType != "hr" || bill.Number != "1" || bill.Congress != "82" {
		t.Fatalf("unexpected identity: %+v", bill)
	}

	if len(bill.Actions) != 1 {
		t.Fatalf("expected one action, got %d", len(bill.Actions))
	}
	action := bill.Actions[0]
	if action.Type != bills.ActionEnacted {
		t.Fatalf("unexpected action type: %q", action.Type)
	}
	if action.Status != bills.StatusEnactedSigned {
		t.Fatalf("unexpected action status: %q", action.Status)
	}
	if action.Text != "Became Public Law No: 82-100." {
		t.Fatalf("unexpected action text: %q", action.Text)
	}
	if !strings.Contains(action.Text, "100") {
		t.Fatalf("action text must cite the law number: %q", action.Text)
	}

	if bill.Status != bills.StatusEnactedSigned || bill.StatusAt != "1951-10-20" {
		t.Fatalf("unexpected derived status: %q %q", bill.Status, bill.StatusAt)
	}
	if bill.EnactedAs == nil || bill.EnactedAs.Number != "100" || bill.EnactedAs.LawType != "public" {
		t.Fatalf("unexpected enacted_as: %+v", bill.EnactedAs)
	}
	if bill.OfficialTitle == nil || *bill.OfficialTitle != "An Act to provide revenue." {
		t.Fatalf("unexpected official title: %v", bill.OfficialTitle)
	}
	if bill.ShortTitle != nil || bill.PopularTitle != nil {
		t.Fatal("short and popular titles must be unknown")
	}
	if bill.IntroducedAt != nil || bill.Sponsor != nil || len(bill.Cosponsors) != 0 || len(bill.Amendments) != 0 {
		t.Fatal("unknowable fields must be explicitly empty")
	}
	if bill.SubjectsTopTerm == nil || *bill.SubjectsTopTerm != "Revenue" {
		t.Fatalf("unexpected subject: %v", bill.SubjectsTopTerm)
	}

	if len(bill.Committees) != 1 {
		t.Fatalf("expected one committee, got %d", len(bill.Committees))
	}
	committee := bill.Committees[0]
	if committee.Name != "House Ways and Means" {
		t.Fatalf("unexpected committee name: %q", committee.Name)
	}
	if committee.ID == nil || *committee.ID != "HSWM" {
		t.Fatalf("unexpected committee id: %v", committee.ID)
	}

	if len(bill.Sources) != 1 {
		t.Fatalf("expected one source, got %d", len(bill.Sources))
	}
	source := bill.Sources[0]
	if source.Name != "statutes" || source.PackageID != "STATUTE-65" || source.AccessID != "STATUTE-65-Pg1" {
		t.Fatalf("unexpected source: %+v", source)
	}
	if source.Page != "1" || source.Volume != "65" {
		t.Fatalf("unexpected source location: %+v", source)
	}

	if record.Version.BillVersionID != "hr1-82-enr" {
		t.Fatalf("unexpected version id: %q", record.Version.BillVersionID)
	}
	if record.Version.IssuedOn != "1951-10-20" {
		t.Fatalf("unexpected issue date: %q", record.Version.IssuedOn)
	}
	if !strings.HasSuffix(record.Version.URLs["pdf"], ".pdf") {
		t.Fatalf("unexpected pdf url: %q", record.Version.URLs["pdf"])
	}
}

func TestPrivateLawCapitalization(t *testing.T) {
	fixture := defaultLawItem()
	fixture.class = "PRIVATELAW"
	fixture.laws = `<law congress="82" number="7" isPrivate="true"/>` + "\n"

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}
	action := record.Bill.Actions[0]
	if action.Law != bills.LawTypePrivate {
		t.Fatalf("unexpected law type: %q", action.Law)
	}
	if action.Text != "Became Private Law No: 82-7." {
		t.Fatalf("unexpected action text: %q", action.Text)
	}
}

func TestSenateResolutionVoteRecordsOppositeChamber(t *testing.T) {
	fixture := defaultLawItem()
	fixture.class = "SCONRES"
	fixture.originChamber = "SENATE"
	fixture.bills = `<bill congress="82" type="SCONRES" number="11"/>` + "\n"
	fixture.laws = ""

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}

	action := record.Bill.Actions[0]
	if action.Type != bills.ActionVote {
		t.Fatalf("unexpected action type: %q", action.Type)
	}
	if action.Where != "h" {
		t.Fatalf("senate-originated resolution must record a house vote, got %q", action.Where)
	}
	if action.Status != bills.StatusPassedConcurrentRes {
		t.Fatalf("unexpected status: %q", action.Status)
	}
	if action.Result != "pass" || action.How != "unknown" || action.VoteType != "vote2" {
		t.Fatalf("unexpected vote placeholders: %+v", action)
	}
	if record.Bill.EnactedAs != nil {
		t.Fatalf("resolutions must not carry enacted_as, got %+v", record.Bill.EnactedAs)
	}
}

func TestHouseOriginatedAmendmentRecordsSenateVote(t *testing.T) {
	fixture := defaultLawItem()
	fixture.class = "CONSTAMEND"
	fixture.proposed = "true"
	fixture.originChamber = "HOUSE"
	fixture.bills = `<bill congress="82" type="HJRES" number="5"/>` + "\n"
	fixture.laws = ""

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}
	action := record.Bill.Actions[0]
	if action.Where != "s" {
		t.Fatalf("house-originated amendment must record a senate vote, got %q", action.Where)
	}
	if action.Status != bills.StatusPassedConstAmend {
		t.Fatalf("unexpected status: %q", action.Status)
	}
}

func TestRatificationNoticeYieldsNoRecord(t *testing.T) {
	for _, proposed := range []string{"", "false"} {
		fixture := defaultLawItem()
		fixture.class = "CONSTAMEND"
		fixture.proposed = proposed
		fixture.originChamber = "HOUSE"
		fixture.laws = ""

		record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
		if err != nil {
			t.Fatalf("ratification notice must not error, got %v", err)
		}
		if record != nil {
			t.Fatalf("ratification notice must yield no record (proposed=%q)", proposed)
		}
	}
}

func TestSkippedClassesYieldNoRecord(t *testing.T) {
	for _, class := range []string{"FRONTMATTER", "BACKMATTER", "PROCLAMATION", "REORGPLAN"} {
		fixture := defaultLawItem()
		fixture.class = class

		record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
		if err != nil {
			t.Fatalf("skipped class %s must not error, got %v", class, err)
		}
		if record != nil {
			t.Fatalf("class %s must yield no record", class)
		}
	}
}

func TestMissingBillReferenceIsExtractionFailure(t *testing.T) {
	fixture := defaultLawItem()
	fixture.bills = ""

	_, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestMissingLawOnLawClassIsExtractionFailure(t *testing.T) {
	fixture := defaultLawItem()
	fixture.laws = ""
	fixture.originChamber = "HOUSE"

	_, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestCongressMismatchIsExtractionFailure(t *testing.T) {
	fixture := defaultLawItem()
	fixture.laws = `<law congress="83" number="100" isPrivate="false"/>` + "\n"

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if !errors.Is(err, extract.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if record != nil {
		t.Fatal("congress mismatch must yield zero records")
	}
}

func TestMultipleBillReferencesUseFirst(t *testing.T) {
	fixture := defaultLawItem()
	fixture.bills = `<bill congress="82" type="HR" number="1"/>` + "\n" +
		`<bill congress="82" type="S" number="9"/>` + "\n"

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if err != nil {
		t.Fatalf("multiple bill references must not error, got %v", err)
	}
	if record.Bill.BillID != "hr1-82" {
		t.Fatalf("expected first bill reference to win, got %q", record.Bill.BillID)
	}
}

func TestTitleUnescapesDoubledQuotes(t *testing.T) {
	fixture := defaultLawItem()
	fixture.title = `An Act known as the &quot;&quot;Revenue Act&quot;&quot;.`

	record, err := newExtractor(nil).Item(context.Background(), itemNode(t, fixture.render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}
	want := `An Act known as the "Revenue Act".`
	if got := record.Bill.Titles[0].Title; got != want {
		t.Fatalf("unexpected title: got %q want %q", got, want)
	}
}

func TestUnresolvedCommitteeKeepsNameWithoutID(t *testing.T) {
	record, err := newExtractor(map[string]string{}).Item(context.Background(), itemNode(t, defaultLawItem().render()), testVolume)
	if err != nil {
		t.Fatalf("Item returned error: %v", err)
	}
	committee := record.Bill.Committees[0]
	if committee.Name != "House Ways and Means" {
		t.Fatalf("unexpected committee name: %q", committee.Name)
	}
	if committee.ID != nil {
		t.Fatalf("expected null committee id, got %q", *committee.ID)
	}
}

func TestParseClass(t *testing.T) {
	cases := map[string]extract.Class{
		"PUBLICLAW":   extract.ClassPublicLaw,
		"PRIVATELAW":  extract.ClassPrivateLaw,
		"HCONRES":     extract.ClassHouseConRes,
		"SCONRES":     extract.ClassSenateConRes,
		"CONSTAMEND":  extract.ClassConstAmend,
		"FRONTMATTER": extract.ClassSkipped,
		"":            extract.ClassSkipped,
	}
	for tag, want := range cases {
		if got := extract.ParseClass(tag); got != want {
			t.Fatalf("ParseClass(%q) = %v, want %v", tag, got, want)
		}
	}
	if extract.ClassSkipped.Processable() {
		t.Fatal("skipped class must not be processable")
	}
	if !extract.ClassPublicLaw.IsLaw() || !extract.ClassPrivateLaw.IsLaw() {
		t.Fatal("law classes must require a law reference")
	}
	if extract.ClassConstAmend.VoteStatus() != bills.StatusPassedConstAmend {
		t.Fatal("unexpected amendment vote status")
	}
	if extract.ClassHouseConRes.VoteStatus() != bills.StatusPassedConcurrentRes {
		t.Fatal("unexpected resolution vote status")
	}
}
