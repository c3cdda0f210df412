package xregistry_test

import (
	"context"
	"fmt"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

func ExampleParseRegistry() {
	raw := `OUI/MA-L                       Organization

30-23-03   (hex)		Belkin International Inc.
302303     (base 16)		Belkin International Inc.
				12045 East Waterfront Drive
				Playa Vista  CA  90094
				US
`
	records, err := xregistry.ParseRegistry(context.Background(), raw)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range records {
		fmt.Println(r.MAC, r.CompanyID, r.Organization)
	}

	// Output:
	// 30:23:03 302303 Belkin International Inc.
}
