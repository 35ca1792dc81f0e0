package catalog

import (
	"strings"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

// CopyingExpenseCode is the distinguished expense category every
// generated invoice carries at least one line of.
const CopyingExpenseCode = "E101"

// ExpenseCategories returns the full UTBMS expense code table.
func ExpenseCategories() []domain.ExpenseCategory {
	return []domain.ExpenseCategory{
		{Code: "E101", Description: "Copying"},
		{Code: "E102", Description: "Outside printing"},
		{Code: "E103", Description: "Word processing"},
		{Code: "E104", Description: "Facsimile"},
		{Code: "E105", Description: "Telephone"},
		{Code: "E106", Description: "Online research"},
		{Code: "E107", Description: "Delivery services/messengers"},
		{Code: "E108", Description: "Postage"},
		{Code: "E109", Description: "Local travel"},
		{Code: "E110", Description: "Out-of-town travel"},
		{Code: "E111", Description: "Meals"},
		{Code: "E112", Description: "Court fees"},
		{Code: "E113", Description: "Subpoena fees"},
		{Code: "E114", Description: "Witness fees"},
		{Code: "E115", Description: "Deposition transcripts"},
		{Code: "E116", Description: "Trial transcripts"},
		{Code: "E117", Description: "Trial exhibits"},
		{Code: "E118", Description: "Litigation support vendors"},
		{Code: "E119", Description: "Experts"},
		{Code: "E120", Description: "Private investigators"},
		{Code: "E121", Description: "Arbitrators/mediators"},
		{Code: "E122", Description: "Local counsel"},
		{Code: "E123", Description: "Other professionals"},
		{Code: "E124", Description: "Other"},
	}
}

// OtherExpenseCategories returns every category except Copying.
func OtherExpenseCategories() []domain.ExpenseCategory {
	all := ExpenseCategories()
	others := make([]domain.ExpenseCategory, 0, len(all)-1)
	for _, c := range all {
		if c.Code != CopyingExpenseCode {
			others = append(others, c)
		}
	}
	return others
}

// DefaultTasks returns the built-in UTBMS task/activity catalog used
// when no custom catalog is uploaded.
func DefaultTasks() []domain.TaskActivity {
	return []domain.TaskActivity{
		{TaskCode: "L100", ActivityCode: "A101", Description: "Legal Research: Analyze legal precedents"},
		{TaskCode: "L110", ActivityCode: "A101", Description: "Legal Research: Review statutes and regulations"},
		{TaskCode: "L120", ActivityCode: "A101", Description: "Legal Research: Draft research memorandum"},
		{TaskCode: "L130", ActivityCode: "A102", Description: "Case Assessment: Initial case evaluation"},
		{TaskCode: "L140", ActivityCode: "A102", Description: "Case Assessment: Develop case strategy"},
		{TaskCode: "L150", ActivityCode: "A102", Description: "Case Assessment: Identify key legal issues"},
		{TaskCode: "L160", ActivityCode: "A103", Description: "Fact Investigation: Interview witnesses"},
		{TaskCode: "L190", ActivityCode: "A104", Description: "Pleadings: Draft complaint/petition"},
		{TaskCode: "L200", ActivityCode: "A104", Description: "Pleadings: Prepare answer/response"},
		{TaskCode: "L210", ActivityCode: "A104", Description: "Pleadings: File motion to dismiss"},
		{TaskCode: "L220", ActivityCode: "A105", Description: "Discovery: Draft interrogatories"},
		{TaskCode: "L230", ActivityCode: "A105", Description: "Discovery: Prepare requests for production"},
		{TaskCode: "L240", ActivityCode: "A105", Description: "Discovery: Review opposing party's discovery responses"},
		{TaskCode: "L250", ActivityCode: "A106", Description: "Depositions: Prepare for deposition"},
		{TaskCode: "L260", ActivityCode: "A106", Description: "Depositions: Attend deposition"},
		{TaskCode: "L300", ActivityCode: "A107", Description: "Motions: Argue motion in court"},
		{TaskCode: "L310", ActivityCode: "A108", Description: "Settlement/Mediation: Prepare for mediation"},
		{TaskCode: "L320", ActivityCode: "A108", Description: "Settlement/Mediation: Attend mediation"},
		{TaskCode: "L330", ActivityCode: "A108", Description: "Settlement/Mediation: Draft settlement agreement"},
		{TaskCode: "L340", ActivityCode: "A109", Description: "Trial Preparation: Prepare witness for trial"},
		{TaskCode: "L350", ActivityCode: "A109", Description: "Trial Preparation: Organize trial exhibits"},
		{TaskCode: "L390", ActivityCode: "A110", Description: "Trial: Present closing argument"},
		{TaskCode: "L400", ActivityCode: "A111", Description: "Appeals: Research appellate issues"},
		{TaskCode: "L410", ActivityCode: "A111", Description: "Appeals: Draft appellate brief"},
		{TaskCode: "L420", ActivityCode: "A111", Description: "Appeals: Argue before appellate court"},
		{TaskCode: "L430", ActivityCode: "A112", Description: "Client Communication: Client meeting"},
		{TaskCode: "L440", ActivityCode: "A112", Description: "Client Communication: Phone call with client"},
		{TaskCode: "L450", ActivityCode: "A112", Description: "Client Communication: Email correspondence with client"},
	}
}

// DefaultMajorTaskCodes returns the task codes weighted heavier during
// fee generation when the built-in catalog is in play.
func DefaultMajorTaskCodes() map[string]struct{} {
	return map[string]struct{}{
		"L110": {}, "L120": {}, "L130": {}, "L140": {}, "L150": {},
		"L160": {}, "L170": {}, "L180": {}, "L190": {},
	}
}

// MajorTaskCodes derives the major set for a custom catalog: every
// litigation-phase code, i.e. codes starting with "L".
func MajorTaskCodes(tasks []domain.TaskActivity) map[string]struct{} {
	major := make(map[string]struct{})
	for _, t := range tasks {
		if strings.HasPrefix(t.TaskCode, "L") {
			major[t.TaskCode] = struct{}{}
		}
	}
	return major
}

// ResolveTasks picks the task catalog for a run: a non-empty custom
// catalog with its derived major set, otherwise the built-ins.
func ResolveTasks(custom []domain.TaskActivity) ([]domain.TaskActivity, map[string]struct{}) {
	if len(custom) == 0 {
		return DefaultTasks(), DefaultMajorTaskCodes()
	}
	return custom, MajorTaskCodes(custom)
}
