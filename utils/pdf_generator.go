package utils

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"
	"github.com/atanum62/shyama-erp-sub000/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateReturnChallanPDF renders the return challan for one dispatched
// item. Each copy stays whole and only moves to a new page if cut.
func GenerateReturnChallanPDF(repo *repository.PDFRepository, lotID int64, itemID string) ([]byte, error) {
	// Fetch mill letterhead
	mill, err := repo.GetProfileForPDF()
	if err != nil {
		return nil, err
	}

	// Fetch lot
	lot, err := repo.GetLotForPDF(lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}

	item := lot.Item(itemID)
	if item == nil {
		return nil, nil
	}
	if item.ReturnStatus != models.ReturnReturned {
		return nil, fmt.Errorf("item %s has not been dispatched for return", itemID)
	}

	// Format dispatch date safely
	formattedDate := "-"
	if item.ReturnDate != nil && !item.ReturnDate.IsZero() {
		formattedDate = item.ReturnDate.Format("02-Jan-2006")
	}

	// Prepare contact numbers
	contacts := ""
	if mill != nil {
		for _, m := range mill.Mobile {
			contacts += m.Number + "(" + m.Label + "), "
		}
		if len(contacts) > 2 {
			contacts = contacts[:len(contacts)-2]
		}
	}

	partyName := ""
	if lot.Party != nil {
		partyName = lot.Party.Name
	}

	// Copy titles
	copyTitles := []string{"Mill Copy", "Dyeing House Copy", "Transport Copy"}

	// Load HTML template once
	tmpl, err := template.ParseFiles("templates/return_challan_template.html")
	if err != nil {
		return nil, err
	}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		data := models.ChallanPDFData{
			Mill:        mill,
			Lot:         lot,
			Item:        item,
			PartyName:   partyName,
			Contacts:    contacts,
			Date:        formattedDate,
			WeightWords: WeightToWords(item.Quantity),
			CopyTitle:   title,
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		// Wrap each copy in a div that avoids breaking across pages
		fullHTML.WriteString("<div class='challan-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	// Final HTML with smart CSS page handling
	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.challan-copy {
			page-break-inside: avoid; /* Prevent cutting copy in middle */
			border: none;
		}
		</style>
		</head>
		<body>` + fullHTML.String() + `</body></html>`

	// Create temp HTML file
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "challan_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
