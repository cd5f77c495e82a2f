package model

// SyntheticLineNumber marks an entry that was generated rather than parsed
// from an input line, such as a defaulted OWNERDOMAIN variable.
const SyntheticLineNumber = -1

// Entry is one parsed ads.txt line: either an advertising-system Record or a
// Variable declaration. The two concrete types are *Record and *Variable;
// consumers distinguish them with a type switch.
type Entry interface {
	// Line returns the 1-based input line number, or SyntheticLineNumber
	Line() int
	// Raw returns the original line text
	Raw() string
	// Valid reports whether the line parsed cleanly
	Valid() bool
}

// Record is an advertising-system record line:
// domain, account_id, relationship[, certification_authority_id]
type Record struct {
	// Domain is the ad-system domain; compared case-insensitively
	Domain string `json:"domain"`
	// AccountID is compared case-sensitively against seller_id values
	AccountID string `json:"account_id"`
	// AccountType holds the raw token seen between account_id and the
	// relationship when the line carries one; it is never interpreted
	AccountType  string       `json:"account_type,omitempty"`
	Relationship Relationship `json:"relationship"`
	// CertAuthorityID is the optional certification authority ID field
	CertAuthorityID string `json:"certification_authority_id,omitempty"`

	LineNumber int    `json:"line_number"`
	RawLine    string `json:"raw_line"`

	IsValid   bool      `json:"is_valid"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`

	HasWarning    bool              `json:"has_warning"`
	WarningCode   WarningCode       `json:"warning_code,omitempty"`
	WarningParams map[string]string `json:"warning_params,omitempty"`
	AllWarnings   []Warning         `json:"all_warnings,omitempty"`

	// ValidationResults reflects only the latest cross-check pass;
	// a re-run fully replaces it
	ValidationResults *CrossCheckResult `json:"validation_results,omitempty"`
	// DuplicateDomain is the publisher domain whose previous document
	// already contained this record
	DuplicateDomain string `json:"duplicate_domain,omitempty"`
}

func (r *Record) Line() int   { return r.LineNumber }
func (r *Record) Raw() string { return r.RawLine }
func (r *Record) Valid() bool { return r.IsValid }

// Clone returns a deep copy so annotation passes never mutate parse results in place
func (r *Record) Clone() *Record {
	out := *r
	if r.WarningParams != nil {
		out.WarningParams = make(map[string]string, len(r.WarningParams))
		for k, v := range r.WarningParams {
			out.WarningParams[k] = v
		}
	}
	if r.AllWarnings != nil {
		out.AllWarnings = make([]Warning, len(r.AllWarnings))
		copy(out.AllWarnings, r.AllWarnings)
	}
	if r.ValidationResults != nil {
		vr := r.ValidationResults.Clone()
		out.ValidationResults = vr
	}
	return &out
}

// AddWarning appends a finding and keeps the primary warning fields pointed
// at the first finding in rule order.
func (r *Record) AddWarning(code WarningCode, params map[string]string) {
	r.AllWarnings = append(r.AllWarnings, Warning{Code: code, Params: params})
	if !r.HasWarning {
		r.HasWarning = true
		r.WarningCode = code
		r.WarningParams = params
	}
}

// Variable is a TYPE=value declaration line. Variables always parse cleanly;
// a variable-shaped line with an unknown type becomes an invalid Record.
type Variable struct {
	Type       VariableType `json:"variable_type"`
	Value      string       `json:"value"`
	LineNumber int          `json:"line_number"`
	RawLine    string       `json:"raw_line"`
}

func (v *Variable) Line() int   { return v.LineNumber }
func (v *Variable) Raw() string { return v.RawLine }
func (v *Variable) Valid() bool { return true }

// Records extracts the record entries from a mixed entry list
func Records(entries []Entry) []*Record {
	var out []*Record
	for _, e := range entries {
		if rec, ok := e.(*Record); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Variables extracts the variable entries from a mixed entry list
func Variables(entries []Entry) []*Variable {
	var out []*Variable
	for _, e := range entries {
		if v, ok := e.(*Variable); ok {
			out = append(out, v)
		}
	}
	return out
}
