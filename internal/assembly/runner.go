package assembly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"

	"github.com/caseprep/docket/internal/cases"
	"github.com/caseprep/docket/internal/exhibits"
)

// stampDesc positions the exhibit label at the bottom center of each page.
const stampDesc = "font:Helvetica, points:10, scale:1 abs, pos:bc, off:0 15, rot:0"

var stepOrder = []string{
	StepExtract,
	StepCompress,
	StepNumber,
	StepTOC,
	StepCover,
	StepMerge,
	StepFinalize,
}

// run executes the build pipeline for one package. It owns a scratch
// directory for the duration of the build and reports progress through the
// tracker and the packages row. Cancellation is cooperative: the context is
// checked between steps and between per-exhibit operations.
func (r *repo) run(ctx context.Context, packageID, caseID uuid.UUID, exs []exhibits.Exhibit) {
	c, err := r.cases.Find(ctx, caseID)
	if err != nil {
		r.finishFailed(ctx, packageID, caseID, fmt.Errorf("find case: %w", err))
		return
	}

	workDir, err := os.MkdirTemp(r.workDir, "docket-assemble-*")
	if err != nil {
		r.finishFailed(ctx, packageID, caseID, fmt.Errorf("create work directory: %w", err))
		return
	}
	defer os.RemoveAll(workDir)

	b := &build{
		repo:      r,
		packageID: packageID,
		c:         c,
		exhibits:  exs,
		workDir:   workDir,
	}

	steps := []func(context.Context) error{
		b.extract,
		b.compress,
		b.number,
		b.toc,
		b.cover,
		b.merge,
	}

	for _, step := range steps {
		if ctx.Err() != nil {
			r.finishFailed(ctx, packageID, caseID, ctx.Err())
			return
		}
		if err := step(ctx); err != nil {
			r.finishFailed(ctx, packageID, caseID, err)
			return
		}
	}

	if err := b.finalize(ctx); err != nil {
		r.finishFailed(ctx, packageID, caseID, err)
		return
	}

	r.logger.Info("package build completed", "package", packageID, "case", caseID)
}

func (r *repo) finishFailed(ctx context.Context, packageID, caseID uuid.UUID, err error) {
	status := StatusFailed
	if ctx.Err() != nil {
		status = StatusCancelled
	}

	last, _ := r.tracker.current(packageID)
	p := failureSnapshot(last, packageID, status, err)

	r.persistProgress(packageID, p)
	r.tracker.update(packageID, p)
	r.revertCase(caseID)

	r.logger.Warn("package build ended", "package", packageID, "status", status, "error", err)
}

// failureSnapshot builds the terminal progress for a build that did not
// complete, carrying forward the step and percent it reached.
func failureSnapshot(last Progress, packageID uuid.UUID, status string, err error) Progress {
	return Progress{
		PackageID: packageID,
		Status:    status,
		Step:      last.Step,
		Percent:   last.Percent,
		Error:     err.Error(),
		Message:   "build did not complete",
	}
}

type build struct {
	repo      *repo
	packageID uuid.UUID
	c         *cases.Case
	exhibits  []exhibits.Exhibit
	workDir   string

	// stamped holds the per-exhibit PDF paths after numbering, in exhibit
	// position order.
	stamped  []string
	tocPDF   string
	coverPDF string
	merged   string
}

// report publishes progress within a step: done of total units finished.
func (b *build) report(step string, done, total int, message string) {
	floor := 0
	for _, s := range stepOrder {
		if s == step {
			break
		}
		floor = stepCeilings[s]
	}

	ceiling := stepCeilings[step]
	if total < 1 {
		total = 1
	}

	p := Progress{
		PackageID: b.packageID,
		Status:    StatusRunning,
		Step:      step,
		Percent:   floor + (ceiling-floor)*done/total,
		Message:   message,
	}

	b.repo.tracker.update(b.packageID, p)
	b.repo.persistProgress(b.packageID, p)
}

// extract downloads every exhibit's source PDF into the work directory.
// Downloads run in parallel up to the worker limit.
func (b *build) extract(ctx context.Context) error {
	b.report(StepExtract, 0, len(b.exhibits), "downloading exhibit documents")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.repo.workers)

	done := make(chan int, len(b.exhibits))
	for i, e := range b.exhibits {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err := b.downloadExhibit(gctx, e, b.sourcePath(i)); err != nil {
				return fmt.Errorf("exhibit %s: %w", e.Name, err)
			}
			done <- i
			return nil
		})
	}

	finished := 0
	go func() {
		for range done {
			finished++
			b.report(StepExtract, finished, len(b.exhibits), "downloading exhibit documents")
		}
	}()

	err := g.Wait()
	close(done)
	if err != nil {
		return err
	}

	b.report(StepExtract, len(b.exhibits), len(b.exhibits), "exhibit documents downloaded")
	return nil
}

func (b *build) downloadExhibit(ctx context.Context, e exhibits.Exhibit, path string) error {
	doc, err := b.repo.documents.Find(ctx, e.DocumentID)
	if err != nil {
		return fmt.Errorf("find document: %w", err)
	}

	blob, err := b.repo.storage.Download(ctx, doc.StorageKey)
	if err != nil {
		return fmt.Errorf("download blob: %w", err)
	}
	defer blob.Body.Close()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create temp pdf: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, blob.Body); err != nil {
		return fmt.Errorf("write temp pdf: %w", err)
	}
	return nil
}

// compress optimizes each PDF. Optimization failures are tolerated; the
// original file stands in so one stubborn PDF cannot sink the build.
func (b *build) compress(ctx context.Context) error {
	for i := range b.exhibits {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		src := b.sourcePath(i)
		dst := filepath.Join(b.workDir, fmt.Sprintf("compressed-%03d.pdf", i))

		reduced, err := compressFile(src, dst, func(src, dst string) error {
			return api.OptimizeFile(src, dst, nil)
		})
		switch {
		case err != nil:
			b.repo.logger.Warn("optimize failed, using original", "file", src, "error", err)
			if err := copyFile(src, dst); err != nil {
				return fmt.Errorf("copy unoptimized pdf: %w", err)
			}
		case !reduced:
			b.repo.logger.Info("optimization ineffective, using original", "file", src)
		}

		b.report(StepCompress, i+1, len(b.exhibits), "compressing documents")
	}
	return nil
}

// compressFile optimizes src into dst and reports whether the optimized
// output is smaller than the source. When it is not, the original bytes are
// copied through unchanged so a PDF never grows on its way into the package.
func compressFile(src, dst string, optimize func(src, dst string) error) (bool, error) {
	if err := optimize(src, dst); err != nil {
		return false, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false, err
	}

	if dstInfo.Size() >= srcInfo.Size() {
		return false, copyFile(src, dst)
	}
	return true, nil
}

// number stamps each exhibit's label onto every page.
func (b *build) number(ctx context.Context) error {
	b.stamped = make([]string, len(b.exhibits))

	for i, e := range b.exhibits {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		src := filepath.Join(b.workDir, fmt.Sprintf("compressed-%03d.pdf", i))
		dst := filepath.Join(b.workDir, fmt.Sprintf("stamped-%03d.pdf", i))

		text := fmt.Sprintf("Exhibit %s", e.Label)
		if err := api.AddTextWatermarksFile(src, dst, nil, true, text, stampDesc, nil); err != nil {
			return fmt.Errorf("stamp %s: %w", text, err)
		}

		b.stamped[i] = dst
		b.report(StepNumber, i+1, len(b.exhibits), "stamping exhibit labels")
	}
	return nil
}

// toc renders the table of contents page.
func (b *build) toc(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.report(StepTOC, 0, 1, "rendering table of contents")

	var lines []string
	lines = append(lines, "TABLE OF CONTENTS", "")
	for _, e := range b.exhibits {
		entry := fmt.Sprintf("Exhibit %s    %s", e.Label, e.Name)
		if e.PageCount > 0 {
			entry = fmt.Sprintf("%s (%d pages)", entry, e.PageCount)
		}
		lines = append(lines, entry)
	}

	b.tocPDF = filepath.Join(b.workDir, "toc.pdf")
	if err := b.renderTextPage("toc.json", b.tocPDF, strings.Join(lines, "\n"), 12); err != nil {
		return fmt.Errorf("render toc: %w", err)
	}

	b.report(StepTOC, 1, 1, "table of contents rendered")
	return nil
}

// cover renders the package cover page.
func (b *build) cover(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.report(StepCover, 0, 1, "rendering cover page")

	lines := []string{
		"EXHIBIT PACKAGE",
		"",
		b.c.Title,
	}
	if b.c.Beneficiary != "" {
		lines = append(lines, fmt.Sprintf("Beneficiary: %s", b.c.Beneficiary))
	}
	lines = append(lines,
		fmt.Sprintf("Visa Classification: %s", b.c.VisaType),
		fmt.Sprintf("Exhibits: %d", len(b.exhibits)),
		fmt.Sprintf("Prepared: %s", time.Now().Format("January 2, 2006")),
	)

	b.coverPDF = filepath.Join(b.workDir, "cover.pdf")
	if err := b.renderTextPage("cover.json", b.coverPDF, strings.Join(lines, "\n"), 18); err != nil {
		return fmt.Errorf("render cover: %w", err)
	}

	b.report(StepCover, 1, 1, "cover page rendered")
	return nil
}

// merge concatenates cover, table of contents, and all stamped exhibits.
func (b *build) merge(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.report(StepMerge, 0, 1, "merging package")

	files := make([]string, 0, len(b.stamped)+2)
	files = append(files, b.coverPDF, b.tocPDF)
	files = append(files, b.stamped...)

	b.merged = filepath.Join(b.workDir, "package.pdf")
	if err := api.MergeCreateFile(files, b.merged, false, nil); err != nil {
		return fmt.Errorf("merge package: %w", err)
	}

	b.report(StepMerge, 1, 1, "package merged")
	return nil
}

// finalize uploads the artifact, records its metadata, and completes the
// package and its case.
func (b *build) finalize(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.report(StepFinalize, 0, 2, "uploading package")

	pageCount, err := api.PageCountFile(b.merged)
	if err != nil {
		return fmt.Errorf("count package pages: %w", err)
	}

	info, err := os.Stat(b.merged)
	if err != nil {
		return fmt.Errorf("stat package: %w", err)
	}

	file, err := os.Open(b.merged)
	if err != nil {
		return fmt.Errorf("open package: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("cases/%s/packages/%s.pdf", b.c.ID, b.packageID)
	if err := b.repo.storage.Upload(ctx, key, file, "application/pdf"); err != nil {
		return fmt.Errorf("upload package blob: %w", err)
	}

	b.report(StepFinalize, 1, 2, "recording package")

	q := `
		UPDATE packages
		SET status = $2, step = $3, progress = 100, message = $4, storage_key = $5,
		    page_count = $6, size_bytes = $7, error = '', updated_at = now(), completed_at = now()
		WHERE id = $1`

	if _, err := b.repo.db.ExecContext(
		ctx, q,
		b.packageID, StatusCompleted, StepFinalize, "package ready", key, pageCount, info.Size(),
	); err != nil {
		return fmt.Errorf("record package: %w", err)
	}

	if _, err := b.repo.cases.SetStatus(ctx, b.c.ID, cases.StatusComplete); err != nil {
		b.repo.logger.Warn("case status update failed", "case", b.c.ID, "error", err)
	}

	b.repo.tracker.update(b.packageID, Progress{
		PackageID: b.packageID,
		Status:    StatusCompleted,
		Step:      StepFinalize,
		Percent:   100,
		Message:   "package ready",
	})
	return nil
}

// renderTextPage generates a single-page PDF from a multi-line text block
// using pdfcpu's JSON page description.
func (b *build) renderTextPage(jsonName, outFile, text string, fontSize int) error {
	page := map[string]any{
		"pages": map[string]any{
			"1": map[string]any{
				"content": map[string]any{
					"text": []map[string]any{
						{
							"value":    text,
							"anchor":   "center",
							"font":     map[string]any{"name": "Helvetica", "size": fontSize},
							"fillCol":  "#000000",
							"bgCol":    "#FFFFFF",
							"margin":   map[string]any{"width": 36},
							"position": []int{0, 0},
						},
					},
				},
			},
		},
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page description: %w", err)
	}

	jsonPath := filepath.Join(b.workDir, jsonName)
	if err := os.WriteFile(jsonPath, data, 0600); err != nil {
		return fmt.Errorf("write page description: %w", err)
	}

	if err := api.CreateFile("", jsonPath, outFile, nil); err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	return nil
}

func (b *build) sourcePath(i int) string {
	return filepath.Join(b.workDir, fmt.Sprintf("source-%03d.pdf", i))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
