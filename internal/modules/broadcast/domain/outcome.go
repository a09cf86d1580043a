package domain

// DeliveryOutcome is the result of one send attempt.
type DeliveryOutcome struct {
	Recipient string
	Success   bool
	Err       error
}

// Tally aggregates the outcomes of one broadcast.
type Tally struct {
	Success  int
	Failure  int
	Outcomes []DeliveryOutcome
}

func (t *Tally) Record(outcome DeliveryOutcome) {
	if outcome.Success {
		t.Success++
	} else {
		t.Failure++
	}
	t.Outcomes = append(t.Outcomes, outcome)
}

// Failed returns the recipients whose delivery failed, in attempt order.
func (t Tally) Failed() []string {
	var failed []string
	for _, o := range t.Outcomes {
		if !o.Success {
			failed = append(failed, o.Recipient)
		}
	}
	return failed
}
