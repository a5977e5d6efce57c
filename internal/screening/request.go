package screening

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/recruitkit/screener/internal/intake"
	"github.com/recruitkit/screener/internal/jobspec"
)

const (
	fieldResumes            = "resumes"
	fieldJobDescription     = "job_description"
	fieldRequiredExperience = "required_experience"
)

// Analyze submits the whole batch in a single multipart request and returns
// the ordered candidate results. The service may legitimately return fewer
// entries than files submitted; that is accepted silently.
func (c *Client) Analyze(files []*intake.ResumeFile, spec *jobspec.JobSpec) (*Results, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	for _, file := range files {
		if err := writeFilePart(w, file); err != nil {
			return nil, err
		}
	}

	if err := w.WriteField(fieldJobDescription, spec.Description); err != nil {
		return nil, fmt.Errorf("writing job description field: %w", err)
	}

	// The field is optional with a default of 0, so zero is simply omitted.
	if spec.RequiredExperience > 0 {
		if err := w.WriteField(fieldRequiredExperience, strconv.Itoa(spec.RequiredExperience)); err != nil {
			return nil, fmt.Errorf("writing required experience field: %w", err)
		}
	}

	w.Close()

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.BaseURL+analyzePath, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	results, err := parseResults(resp.Body)
	if err != nil {
		return nil, err
	}

	if results.Len() < len(files) {
		c.logger.Debug("service returned fewer results than submitted resumes",
			zap.Int("submitted", len(files)),
			zap.Int("returned", results.Len()),
		)
	}

	return results, nil
}

func writeFilePart(w *multipart.Writer, file *intake.ResumeFile) error {
	fh, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("opening resume %q: %w", file.Name, err)
	}
	defer fh.Close()

	part, err := w.CreateFormFile(fieldResumes, file.Name)
	if err != nil {
		return fmt.Errorf("creating form part for %q: %w", file.Name, err)
	}

	if _, err := io.Copy(part, fh); err != nil {
		return fmt.Errorf("copying resume %q: %w", file.Name, err)
	}

	return nil
}

func parseResults(body io.Reader) (*Results, error) {
	var items []map[string]any
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	var parsed []*CandidateResult
	cfg := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   &parsed,
		TagName:  "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding candidate results: %w", err)
	}

	return &Results{Items: parsed}, nil
}

// Download fetches the original resume addressed by a result's
// ResumeFileName and writes it into destDir, returning the written path.
func (c *Client) Download(fileName, destDir string) (string, error) {
	downloadURL := fmt.Sprintf("%s%s/%s", c.BaseURL, uploadsPath, url.PathEscape(fileName))

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	dest := filepath.Join(destDir, filepath.Base(fileName))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("writing %q: %w", dest, err)
	}

	return dest, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}
