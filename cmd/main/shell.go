package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"stylesphere/storefront/internal/container"
	"stylesphere/storefront/internal/domain"
)

// runShop is the interactive listing session: keystrokes feed the debounced
// search, filter commands drive the controller, and each state change
// reprints the current page.
func runShop(ctx context.Context, app *container.Container) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := app.Service.NewListingController()
	ctrl.Start(ctx)
	defer ctrl.Close()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ctrl.Updates():
				if ctrl.Loading() {
					fmt.Println("Loading...")
					continue
				}
				if err := ctrl.Err(); err != nil {
					fmt.Printf("Something went wrong: %v (type 'refresh' to try again)\n", err)
					continue
				}
				printListing(ctrl.Listing())
			}
		}
	}()

	fmt.Println("Interactive shop. Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			fmt.Println("search <text> | sort <key> | size <size> | category <a,b,...> | price <min> <max> | page <n> | clear | history | refresh | quit")
		case "search":
			ctrl.SetSearchInput(rest)
		case "sort":
			ctrl.SetSort(domain.ParseSortKey(rest))
		case "size":
			ctrl.SetSize(rest)
		case "category":
			if rest == "" {
				ctrl.SetCategories(nil)
			} else {
				ctrl.SetCategories(strings.Split(rest, ","))
			}
		case "price":
			min, max, err := parsePriceBounds(rest)
			if err != nil {
				fmt.Println(err)
				continue
			}
			ctrl.SetPriceBounds(min, max)
		case "page":
			n, err := strconv.Atoi(rest)
			if err != nil {
				fmt.Println("page expects a number")
				continue
			}
			ctrl.SetPage(n)
		case "clear":
			ctrl.ClearFilters()
		case "history":
			for _, q := range ctrl.SearchHistory() {
				fmt.Println(q)
			}
		case "refresh":
			ctrl.Refresh()
		default:
			fmt.Printf("Unknown command %q, type 'help'\n", cmd)
		}
	}
	return scanner.Err()
}

// parsePriceBounds reads "<min> <max>", where "-" means unbounded
func parsePriceBounds(s string) (*float64, *float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, nil, fmt.Errorf("price expects: price <min> <max> (use - for unbounded)")
	}

	parse := func(v string) (*float64, error) {
		if v == "-" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", v)
		}
		return &f, nil
	}

	min, err := parse(fields[0])
	if err != nil {
		return nil, nil, err
	}
	max, err := parse(fields[1])
	if err != nil {
		return nil, nil, err
	}
	return min, max, nil
}
