package bills

import (
	"fmt"
	"time"
)

// Action types and the status codes the downstream status derivation knows.
const (
	ActionEnacted = "enacted"
	ActionVote    = "vote"

	StatusEnactedSigned       = "ENACTED:SIGNED"
	StatusPassedConstAmend    = "PASSED:CONSTAMEND"
	StatusPassedConcurrentRes = "PASSED:CONCURRENTRES"

	LawTypePublic  = "public"
	LawTypePrivate = "private"

	// VersionEnrolled is the only version code this source can produce:
	// the statute text is by definition the enrolled bill.
	VersionEnrolled = "enr"
)

// ID builds the composite bill identifier type+number-congress, e.g. hr1-82.
func ID(billType, number, congress string) string {
	return fmt.Sprintf("%s%s-%s", billType, number, congress)
}

// VersionID builds the composite version identifier
// type+number-congress-versioncode, e.g. hr1-82-enr.
func VersionID(billType, number, congress, versionCode string) string {
	return fmt.Sprintf("%s%s-%s-%s", billType, number, congress, versionCode)
}

// Action is one normalized life-cycle event. Enacted actions carry the law
// citation fields; vote actions carry the chamber/result fields. Struct
// fields are declared in the alphabetical order of their JSON keys so the
// serialized form is key-sorted.
type Action struct {
	ActedAt    string   `json:"acted_at"`
	Congress   string   `json:"congress,omitempty"`
	How        string   `json:"how,omitempty"`
	Law        string   `json:"law,omitempty"`
	Number     string   `json:"number,omitempty"`
	References []string `json:"references"`
	Result     string   `json:"result,omitempty"`
	Status     string   `json:"status"`
	Text       string   `json:"text,omitempty"`
	Type       string   `json:"type"`
	VoteType   string   `json:"vote_type,omitempty"`
	Where      string   `json:"where,omitempty"`
}

// Committee is one committee reference on a bill. ID stays nil when the
// name could not be resolved against the committee-name source.
type Committee struct {
	Activity []string `json:"activity"`
	Name     string   `json:"committee"`
	ID       *string  `json:"committee_id"`
}

// Source records the provenance of a bill record within the GPO archive.
type Source struct {
	AccessID  string `json:"access_id"`
	PackageID string `json:"package_id"`
	Page      string `json:"page"`
	Position  string `json:"position"`
	Name      string `json:"source"`
	URL       string `json:"source_url"`
	Volume    string `json:"volume"`
}

// Title is one title variant of a bill.
type Title struct {
	As    string `json:"as"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// SlipLaw is the enacted slip-law citation.
type SlipLaw struct {
	Congress string `json:"congress"`
	LawType  string `json:"law_type"`
	Number   string `json:"number"`
}

// Bill is the canonical output record. Fields the enactment record cannot
// supply (sponsor, cosponsors, related bills, amendments, full subject list)
// are present but empty so downstream consumers see a stable schema.
// Fields are declared in the alphabetical order of their JSON keys.
type Bill struct {
	Actions         []Action       `json:"actions"`
	Amendments      []string       `json:"amendments"`
	BillID          string         `json:"bill_id"`
	BillType        string         `json:"bill_type"`
	Committees      []Committee    `json:"committees"`
	Congress        string         `json:"congress"`
	Cosponsors      []string       `json:"cosponsors"`
	EnactedAs       *SlipLaw       `json:"enacted_as"`
	History         map[string]any `json:"history"`
	IntroducedAt    *string        `json:"introduced_at"`
	Number          string         `json:"number"`
	OfficialTitle   *string        `json:"official_title"`
	PopularTitle    *string        `json:"popular_title"`
	RelatedBills    []string       `json:"related_bills"`
	ShortTitle      *string        `json:"short_title"`
	Sponsor         *string        `json:"sponsor"`
	Sources         []Source       `json:"sources"`
	Status          string         `json:"status"`
	StatusAt        string         `json:"status_at"`
	Subjects        []string       `json:"subjects"`
	SubjectsTopTerm *string        `json:"subjects_top_term"`
	Titles          []Title        `json:"titles"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Version is the secondary output: a stub describing one text rendition of
// the bill.
type Version struct {
	BillVersionID string            `json:"bill_version_id"`
	IssuedOn      string            `json:"issued_on"`
	URLs          map[string]string `json:"urls"`
	VersionCode   string            `json:"version_code"`
}
