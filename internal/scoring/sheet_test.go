package scoring

import (
	"fmt"
	"strings"
)

// mcqBlock renders one option-based question the way the flattened sheet
// shows it. chosen is "1".."4" or "--".
func mcqBlock(n int, qid string, options [4]string, chosen string) string {
	status := "Answered"
	if chosen == "--" {
		status = "Not Answered"
	}
	return fmt.Sprintf("Q.%d Which of the following is correct? Options 1. a 2. b 3. c 4. d "+
		"Question Type : MCQ Question ID : %s Option 1 ID : %s Option 2 ID : %s Option 3 ID : %s Option 4 ID : %s "+
		"Status : %s Chosen Option : %s ",
		n, qid, options[0], options[1], options[2], options[3], status, chosen)
}

// saBlock renders one numeric-entry question. given may be "--".
func saBlock(n int, qid, given string) string {
	return fmt.Sprintf("Q.%d Find the value of x. Given Answer : %s Question Type : SA Question ID : %s Status : Answered ",
		n, given, qid)
}

func sheet(blocks ...string) string {
	return "JEE Main Response Sheet Candidate Name ABC Section : Mathematics " + strings.Join(blocks, "")
}
