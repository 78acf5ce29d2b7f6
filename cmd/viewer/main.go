package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"cataloghub/internal/viewer"
	"cataloghub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	baseURL := flag.String("api", defaultBaseURL, "API base URL")
	portalSlug := flag.String("portal", "", "portal slug")
	editionSlug := flag.String("edition", "", "edition slug")
	mode := flag.String("mode", "spread", "layout mode: spread or single")
	flag.Parse()

	if *portalSlug == "" || *editionSlug == "" {
		log.Fatal("usage: viewer -portal <slug> -edition <slug> [-mode spread|single]")
	}

	client := &http.Client{Timeout: 15 * time.Second}

	cat, status, err := fetchCatalog(client, *baseURL, *portalSlug, *editionSlug)
	if err != nil {
		log.Fatalf("fetch catalog: %v", err)
	}
	if status == http.StatusNotFound {
		fmt.Println("This catalog is not available.")
		return
	}
	if status != http.StatusOK {
		log.Fatalf("fetch catalog: unexpected status %d", status)
	}
	if cat.Counts.Total == 0 {
		fmt.Printf("%s: this catalog has no pages yet.\n", cat.EditionName)
		return
	}

	prefetcher := viewer.NewHTTPPrefetcher(client)
	defer prefetcher.Close()

	m := viewer.New(cat.Pages, viewer.Config{
		Mode:     viewer.Mode(*mode),
		Prefetch: prefetcher,
	})

	fmt.Printf("%s: %d pages. Commands: n(ext) p(rev) g <unit> m(ode) l(ink) q(uit)\n",
		cat.EditionName, cat.Counts.Total)
	render(m, cat, client)

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "n", "next":
			viewer.Apply(m, viewer.TranslateKey(viewer.KeyArrowRight).Command)
		case "p", "prev":
			viewer.Apply(m, viewer.TranslateKey(viewer.KeyArrowLeft).Command)
		case "g", "goto":
			if len(fields) < 2 {
				fmt.Println("usage: g <unit>")
				continue
			}
			unit, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: g <unit>")
				continue
			}
			// progress dots are 1-based on screen
			viewer.ClickIndicator(m, unit-1)
		case "m", "mode":
			if m.Mode() == viewer.ModeSpread {
				m.SetMode(viewer.ModeSingle)
			} else {
				m.SetMode(viewer.ModeSpread)
			}
		case "l", "link":
			if p := m.CurrentPage(); p != nil {
				if link := viewer.DeepLink(cat.PortalSlug, *p); link != "" {
					fmt.Println(*baseURL + link)
				} else {
					fmt.Println("no company link on this page")
				}
			}
		case "q", "quit":
			viewer.Apply(m, viewer.TranslateKey(viewer.KeyEscape).Command)
		default:
			fmt.Println("commands: n p g <unit> m l q")
			continue
		}

		if m.Status() == viewer.StatusClosed {
			fmt.Println("closed")
			return
		}
		render(m, cat, client)
	}
}

func fetchCatalog(client *http.Client, baseURL, portalSlug, editionSlug string) (*models.ComposedCatalog, int, error) {
	url := fmt.Sprintf("%s/portals/%s/editions/%s/catalog", baseURL, portalSlug, editionSlug)
	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var cat models.ComposedCatalog
	if err := json.NewDecoder(resp.Body).Decode(&cat); err != nil {
		return nil, resp.StatusCode, err
	}
	return &cat, resp.StatusCode, nil
}

func render(m *viewer.Machine, cat *models.ComposedCatalog, client *http.Client) {
	if m.Mode() == viewer.ModeSpread {
		sp := m.CurrentSpread()
		fmt.Printf("[%s]  %s | %s\n", m.Label(), side(m, client, sp.Left), side(m, client, sp.Right))
	} else {
		p := m.CurrentPage()
		fmt.Printf("[%s]  %s\n", m.Label(), side(m, client, p))
	}

	buttons := viewer.Buttons(m)
	fmt.Printf("page %s  %3.0f%%  prev:%s next:%s  units:%d\n",
		m.Progress(), m.Fraction()*100,
		enabled(buttons.PrevEnabled), enabled(buttons.NextEnabled),
		m.UnitCount())
}

// side renders one half of a spread, probing the image so a dead URL shows
// a placeholder instead of halting navigation.
func side(m *viewer.Machine, client *http.Client, p *models.FlatPage) string {
	if p == nil {
		return "·"
	}
	if !m.Broken(p.GlobalIndex) && !probe(client, p.ImageURL) {
		m.MarkBroken(p.GlobalIndex)
	}
	if m.Broken(p.GlobalIndex) {
		return fmt.Sprintf("p%d (image unavailable)", p.GlobalIndex+1)
	}
	return fmt.Sprintf("p%d %s", p.GlobalIndex+1, p.ImageURL)
}

func probe(client *http.Client, url string) bool {
	if url == "" {
		return false
	}
	resp, err := client.Head(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}

func enabled(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
