// lookup.go - Rate queries against a loaded rate sheet.
//
// The one genuinely useful behavior of the old rate "chatbot": given a
// license type, return its rate. Exact match on the license cell; the rate
// is returned as found in the sheet, uncoerced.
package recon

// LookupRate finds the rate for a license type. When the sheet holds
// duplicate licenses the first row wins, consistent with the join.
func LookupRate(rates []RateRecord, license string) (string, bool) {
	for _, r := range rates {
		if r.License == license {
			return r.Rate, true
		}
	}
	return "", false
}
