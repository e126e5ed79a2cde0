// Package tlaudit finds user-facing strings in Power BI report definitions
// (PBIR) that were left untranslated.
//
// A string is suspect when it looks like prose but contains none of the
// diagnostic characters of the target language. Findings are grouped by the
// report element they came from: titles, field display names, textbox runs,
// placeholders, slicer headers, button captions and page names.
//
// Basic usage:
//
//	a := tlaudit.NewAuditor("sv-SE",
//	    tlaudit.WithExceptionsFile("translation_exceptions.json"),
//	    tlaudit.WithConcurrency(8),
//	)
//
//	result, err := a.Scan(ctx, "Report.Report/definition/pages")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.FormatFindings(result))
//
// Coverage validation and the missing-displayName listing work the same way
// through Auditor.Coverage and Auditor.MissingDisplayNames.
package tlaudit
