// Package domain contains the core business entities for docfeed.
// It has no dependencies on other internal packages and defines the
// vocabulary shared by the fetch, extraction and classification layers:
// source references, fetch and extraction results, script verdicts,
// document records and run summaries.
package domain
