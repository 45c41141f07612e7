package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/cristianoliveira/folio/cmd"
	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/format"
	"github.com/spf13/cobra"
)

type listClient interface {
	Listing(ctx context.Context, page domain.Page, f domain.Filters) (format.Listing, error)
}

const listCommandLong = `List projects, experience or education with filters and facet counts.

USAGE:
    folio list <projects|experience|education> [OPTIONS]

OPTIONS:
    --search <text>       Search titles, descriptions and technologies
    --type <type>         Experience type: full_time, contract, freelance, internship
    --technology <name>   Projects using a technology
    --featured            Featured projects only
    --sort <field>        Sort by a field (title, year, start_date, ...)
    --order <asc|desc>    Sort order (default asc)
    --format=<format>     Output format: table (default), simple, compact, json
    -h, --help            Show this help

Facet counts are computed over the whole collection, before any filter.`

// listOptions holds the flag values of the list command.
type listOptions struct {
	Search     string
	Type       string
	Technology string
	Featured   bool
	Sort       string
	Order      string
	Format     string
}

// filters converts the flags to filters, validating them the same way the
// relay validates query parameters.
func (o listOptions) filters() (domain.Filters, error) {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(domain.ParamSearch, o.Search)
	set(domain.ParamType, o.Type)
	set(domain.ParamTechnology, o.Technology)
	set(domain.ParamSort, o.Sort)
	set(domain.ParamOrder, o.Order)
	if o.Featured {
		values.Set(domain.ParamFeatured, strconv.FormatBool(true))
	}
	return domain.FiltersFromQuery(values)
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client listClient) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var opts listOptions

	listCmd := &cobra.Command{
		Use:   "list <page>",
		Short: "List a page with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := domain.ParsePage(args[0])
			if err != nil {
				return err
			}
			return printListing(cmd.Context(), cmd.OutOrStdout(), client, page, opts)
		},
	}

	f := listCmd.Flags()
	f.StringVar(&opts.Search, "search", "", "Search text")
	f.StringVar(&opts.Type, "type", "", "Experience type filter")
	f.StringVar(&opts.Technology, "technology", "", "Technology filter")
	f.BoolVar(&opts.Featured, "featured", false, "Featured projects only")
	f.StringVar(&opts.Sort, "sort", "", "Sort field")
	f.StringVar(&opts.Order, "order", "", "Sort order: asc or desc")
	f.StringVar(&opts.Format, "format", string(format.FormatterTypeTable), "Output format: table, simple, compact, json")

	return listCmd
}

func printListing(ctx context.Context, w io.Writer, client listClient, page domain.Page, opts listOptions) error {
	formatterType, err := format.ParseFormatterType(opts.Format)
	if err != nil {
		return err
	}
	filters, err := opts.filters()
	if err != nil {
		return err
	}
	listing, err := client.Listing(ctx, page, filters)
	if err != nil {
		return fmt.Errorf("list %s: %w", page, err)
	}
	return format.NewFormatter(formatterType).FormatListing(listing, w)
}

var listCmd = NewListCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
