package dashboard

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/billed-app/billed/internal/domain/entity"
	"github.com/billed-app/billed/internal/domain/triage"
	"github.com/billed-app/billed/internal/format"
)

// Internal accounts whose bills never show up in the review columns.
var usersTest = []string{
	"cedric.hiely@billed.com",
	"christian.saluzzo@billed.com",
	"jean.limbert@billed.com",
}

// FilteredBills returns the bills whose status equals status. When
// excludeSelf is set, bills submitted by viewerEmail or by one of the
// fixed test accounts are dropped as well, so a reviewer never triages
// their own submissions. The flag is explicit configuration rather
// than an execution-environment probe.
func FilteredBills(bills []entity.Bill, status, viewerEmail string, excludeSelf bool) []entity.Bill {
	if len(bills) == 0 {
		return []entity.Bill{}
	}

	excluded := map[string]bool{}
	if excludeSelf {
		for _, email := range usersTest {
			excluded[email] = true
		}
		excluded[viewerEmail] = true
	}

	filtered := []entity.Bill{}
	for _, bill := range bills {
		if bill.Status != status {
			continue
		}
		if excluded[bill.Email] {
			continue
		}
		filtered = append(filtered, bill)
	}
	return filtered
}

// Card renders one bill summary card. The submitter's name is derived
// from the email local part: "jane.doe@x" shows as "jane doe", a local
// part without a dot becomes the last name alone.
func Card(bill entity.Bill) string {
	localPart := strings.Split(bill.Email, "@")[0]
	firstName, lastName := "", localPart
	if strings.Contains(localPart, ".") {
		parts := strings.SplitN(localPart, ".", 2)
		firstName, lastName = parts[0], parts[1]
	}

	date := bill.Date
	if formatted, err := format.Date(bill.Date); err == nil {
		date = formatted
	}

	return fmt.Sprintf(`
    <div class='bill-card' id='open-bill%[1]s' data-testid='open-bill%[1]s'>
      <div class='bill-card-name-container'>
        <div class='bill-card-name'> %[2]s %[3]s </div>
        <span class='bill-card-grey'> ... </span>
      </div>
      <div class='name-price-container'>
        <span> %[4]s </span>
        <span> %[5]d € </span>
      </div>
      <div class='date-type-container'>
        <span> %[6]s </span>
        <span> %[7]s </span>
      </div>
    </div>
  `,
		bill.ID,
		template.HTMLEscapeString(firstName),
		template.HTMLEscapeString(lastName),
		template.HTMLEscapeString(bill.Name),
		bill.Amount,
		template.HTMLEscapeString(date),
		template.HTMLEscapeString(bill.Type),
	)
}

// Cards concatenates the cards of all bills in order. Empty input
// yields empty output.
func Cards(bills []entity.Bill) string {
	var b strings.Builder
	for _, bill := range bills {
		b.WriteString(Card(bill))
	}
	return b.String()
}

// GetStatus maps a column index to its bill status. Indexes outside
// 1..3 map to the empty string.
func GetStatus(index int) string {
	switch index {
	case triage.ColumnPending:
		return entity.StatusPending
	case triage.ColumnAccepted:
		return entity.StatusAccepted
	case triage.ColumnRefused:
		return entity.StatusRefused
	}
	return ""
}
