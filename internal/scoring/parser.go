package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	questionMarker = regexp.MustCompile(`Q\.\d+`)
	questionIDRe   = regexp.MustCompile(`Question ID\s*:\s*(\d+)`)
	chosenOptionRe = regexp.MustCompile(`Chosen Option\s*:\s*([1-4])`)
	optionIDRe     = regexp.MustCompile(`Option ([1-4]) ID\s*:\s*(\d+)`)
	givenAnswerRe  = regexp.MustCompile(`Given(?:\s*Answer)?\s*:?\s*([-+]?\d*\.?\d+)`)
)

const optionsPerQuestion = 4

// SplitQuestions cuts the flattened sheet text at every "Q.<n>" marker. The
// marker stays at the head of its chunk and the text before the first marker
// is dropped.
func SplitQuestions(text string) []string {
	idx := questionMarker.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	chunks := make([]string, 0, len(idx))
	for i, loc := range idx {
		end := len(text)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		chunks = append(chunks, text[loc[0]:end])
	}
	return chunks
}

// ParseChunk extracts a ResponseRecord from one question chunk. The second
// return is false when the chunk has no Question ID and so is not a question.
func ParseChunk(chunk string) (ResponseRecord, bool) {
	m := questionIDRe.FindStringSubmatch(chunk)
	if m == nil {
		return ResponseRecord{}, false
	}
	rec := ResponseRecord{QuestionID: m[1], Response: Unattempted}

	if strings.Contains(chunk, "Option 1 ID") {
		rec.Kind = KindMCQ
		parseChoice(chunk, &rec)
		return rec, true
	}

	rec.Kind = KindNumeric
	if g := givenAnswerRe.FindStringSubmatch(chunk); g != nil {
		rec.Response = g[1]
	}
	return rec, true
}

func parseChoice(chunk string, rec *ResponseRecord) {
	chosen := chosenOptionRe.FindStringSubmatch(chunk)
	if chosen == nil {
		return
	}

	byNumber := make(map[int]string, optionsPerQuestion)
	for _, m := range optionIDRe.FindAllStringSubmatch(chunk, -1) {
		n, _ := strconv.Atoi(m[1])
		if _, seen := byNumber[n]; !seen {
			byNumber[n] = m[2]
		}
	}
	if len(byNumber) < optionsPerQuestion {
		return
	}

	ids := make([]string, optionsPerQuestion)
	for n := 1; n <= optionsPerQuestion; n++ {
		ids[n-1] = byNumber[n]
	}
	n, _ := strconv.Atoi(chosen[1])
	rec.OptionIDs = ids
	rec.Response = ids[n-1]
}

// ParseResponses turns sheet text into ordered response records.
func ParseResponses(text string) []ResponseRecord {
	chunks := SplitQuestions(text)
	records := make([]ResponseRecord, 0, len(chunks))
	for _, c := range chunks {
		if rec, ok := ParseChunk(c); ok {
			records = append(records, rec)
		}
	}
	return records
}

var candidateLabels = []struct {
	label string
	set   func(*CandidateInfo, string)
}{
	{"Candidate Name", func(c *CandidateInfo, v string) { c.Name = v }},
	{"Application No", func(c *CandidateInfo, v string) { c.ApplicationNo = v }},
	{"Roll No", func(c *CandidateInfo, v string) { c.RollNo = v }},
	{"Test Date", func(c *CandidateInfo, v string) { c.TestDate = v }},
	{"Test Time", func(c *CandidateInfo, v string) { c.TestTime = v }},
}

// ParseCandidateInfo reads the candidate block from the first table whose
// text mentions "Application No". Fields it cannot find stay Unknown.
func ParseCandidateInfo(tables []Table) CandidateInfo {
	info := CandidateInfo{
		Name:          Unknown,
		ApplicationNo: Unknown,
		RollNo:        Unknown,
		TestDate:      Unknown,
		TestTime:      Unknown,
	}
	for _, t := range tables {
		if !strings.Contains(t.Text, "Application No") {
			continue
		}
		for _, row := range t.Rows {
			if len(row) < 2 {
				continue
			}
			label, value := trim(row[0]), trim(row[1])
			for _, l := range candidateLabels {
				if strings.Contains(label, l.label) {
					l.set(&info, value)
					break
				}
			}
		}
		break
	}
	return info
}

func trim(s string) string { return strings.TrimSpace(s) }

func isUnattempted(response string) bool {
	switch trim(response) {
	case Unattempted, "--", "":
		return true
	}
	return false
}
