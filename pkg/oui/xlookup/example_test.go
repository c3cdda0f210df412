package xlookup_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/oui/xlookup"
	"github.com/omeyang/xoui/pkg/oui/xsource"
)

func ExampleService_Lookup() {
	registry := strings.Join([]string{
		"OUI/MA-L                                                    Organization",
		"",
		"30-23-03   (hex)\t\tBelkin International Inc.",
		"302303     (base 16)\t\tBelkin International Inc.",
		"\t\t\t\tPlaya Vista  CA  90094",
		"\t\t\t\tUS",
	}, "\n")

	logger, _, _ := xlog.New().SetOutput(io.Discard).Build()
	svc, err := xlookup.New(
		xlookup.WithFetcher(xsource.NewStaticFetcher(registry)),
		xlookup.WithLogger(logger),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer svc.Close()

	ctx := context.Background()
	for _, mac := range []string{"30:23:3:3A:F3:1", "02:00:00:00:00:01", "30:23:03:3A:F3"} {
		r := svc.Lookup(ctx, mac)
		fmt.Printf("%s %q %q\n", r.Kind(), r.MAC(), r.Organization())
	}
	// Output:
	// vendor "30:23:03" "Belkin International Inc."
	// private "02:00:00" "Private"
	// no_match "" ""
}
