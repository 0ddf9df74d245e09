package extract

import "statutes/internal/bills"

type assembleInput struct {
	billRef    billRef
	billID     string
	title      string
	subject    *string
	committees []bills.Committee
	actions    []bills.Action
	source     bills.Source
	pdfURL     string
}

// assemble merges the extracted fields into the canonical bill record and
// the enrolled version stub. Fields this source cannot know are set to
// explicit empty values so the output schema is stable.
func (e *Extractor) assemble(in assembleInput) *Record {
	titles := []bills.Title{{
		As:    "enacted",
		Title: in.title,
		Type:  "official",
	}}

	status, statusAt := bills.LatestStatus(in.actions)

	bill := bills.Bill{
		Actions:         in.actions,
		Amendments:      []string{},
		BillID:          in.billID,
		BillType:        in.billRef.billType,
		Committees:      in.committees,
		Congress:        in.billRef.congress,
		Cosponsors:      []string{},
		EnactedAs:       bills.SlipLawFrom(in.actions),
		History:         bills.HistoryFromActions(in.actions),
		IntroducedAt:    nil,
		Number:          in.billRef.number,
		OfficialTitle:   bills.CurrentTitleFor(titles, "official"),
		PopularTitle:    bills.CurrentTitleFor(titles, "popular"),
		RelatedBills:    []string{},
		ShortTitle:      bills.CurrentTitleFor(titles, "short"),
		Sponsor:         nil,
		Sources:         []bills.Source{in.source},
		Status:          status,
		StatusAt:        statusAt,
		Subjects:        []string{},
		SubjectsTopTerm: in.subject,
		Titles:          titles,
	}

	version := bills.Version{
		BillVersionID: bills.VersionID(in.billRef.billType, in.billRef.number, in.billRef.congress, bills.VersionEnrolled),
		IssuedOn:      statusAt,
		URLs:          map[string]string{"pdf": in.pdfURL},
		VersionCode:   bills.VersionEnrolled,
	}

	return &Record{Bill: bill, Version: version, PDFURL: in.pdfURL}
}
