// Package services contains the core business logic, free of any
// adapter concern. Services depend on the ports, never on concrete
// adapters.
package services
