// internal/domain/homework/verdict.go
package homework

import "fmt"

// Status is the review status code reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts is the Verdict Table. It is never modified at runtime.
var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable sentence for a status code.
func Verdict(s Status) (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// ParseStatus builds the notification text for a single homework record.
func ParseStatus(hw map[string]any) (string, error) {
	name, ok := hw[FieldHomeworkName].(string)
	if !ok || name == "" {
		return "", &MissingFieldError{Field: FieldHomeworkName}
	}

	rawStatus, ok := hw[FieldStatus].(string)
	if !ok {
		return "", &MissingFieldError{Field: FieldStatus}
	}

	verdict, ok := Verdict(Status(rawStatus))
	if !ok {
		return "", &UnknownStatusError{Status: rawStatus, HomeworkName: name}
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
