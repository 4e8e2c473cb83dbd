package domain

// ParseBody runs the marker scanner, code-block extractor and record decoder
// over an issue body. The returned error wraps the sentinel of the stage that failed.
func ParseBody(body string) (*LinkRecord, error) {
	region, err := ScanRegion(body)
	if err != nil {
		return nil, err
	}
	block, err := ExtractCodeBlock(region)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(block)
}
