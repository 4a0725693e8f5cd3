// Package schema defines the contract between forms and external schema
// engines. An engine is wrapped as a Parser whose SafeParse reports either
// success or a list of issues, each carrying a field path and a message.
// Adapters for kin-openapi and gojsonschema live in the openapi and
// jsonschema sub-packages.
package schema
