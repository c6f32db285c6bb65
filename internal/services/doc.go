// Package services contains the application service layer.
//
// AnalysisService runs the complete pipeline for one uploaded workbook:
//
//	parse -> forecast -> allocate -> summarize
//
// The run is synchronous and stateless; nothing is kept between requests.
// Per-request options (default shelf life, forecast month window) override
// the configured defaults.
package services
