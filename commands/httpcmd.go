package commands

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/vernacular-lang/vernacular/interp"
)

// httpPatterns give scripts a small web surface: fetch, download, a
// form-encoded post, and a status check. Responses over maxBodyPreview are
// truncated on screen but stored whole in the response variable.
const maxBodyPreview = 500

func (r *Runtime) httpPatterns() []pattern {
	return []pattern{
		cmd(`(?:get|fetch) (?:the )?(?:url|page|website) (\S+)`,
			`fetch the url URL`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				resp, err := r.httpClient.Get(normalizeURL(m[1]))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not reach %s: %v", m[1], err)
				}
				defer resp.Body.Close()
				body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not read the response from %s: %v", m[1], err)
				}
				sc.Assign("response", string(body))
				preview := string(body)
				if len(preview) > maxBodyPreview {
					preview = preview[:maxBodyPreview] + "..."
				}
				r.printf("%s", preview)
				return interp.Normal, nil
			}),
		cmd(`download (\S+) to (?:the )?file (\S+)`,
			`download URL to file NAME`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				resp, err := r.httpClient.Get(normalizeURL(m[1]))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not reach %s: %v", m[1], err)
				}
				defer resp.Body.Close()
				f, err := os.Create(m[2])
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not create %s: %v", m[2], err)
				}
				defer f.Close()
				n, err := io.Copy(f, resp.Body)
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not save %s: %v", m[2], err)
				}
				r.printf("Downloaded %d byte(s) to %s", n, m[2])
				return interp.Normal, nil
			}),
		cmd(`post (.+) to (?:the )?url (\S+)`,
			`post KEY=VALUE to the url URL`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				form := url.Values{}
				for _, pair := range strings.Split(m[1], ",") {
					key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
					if !found {
						form.Add("data", stringOperand(sc, pair))
						continue
					}
					form.Add(strings.TrimSpace(key), stringOperand(sc, value))
				}
				resp, err := r.httpClient.PostForm(normalizeURL(m[2]), form)
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not post to %s: %v", m[2], err)
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
				sc.Assign("response", string(body))
				r.printf("Posted to %s (%s)", m[2], resp.Status)
				return interp.Normal, nil
			}),
		cmd(`check (?:the )?url (\S+)`,
			`check the url URL`,
			func(sc *interp.Scopes, m []string) (interp.Outcome, error) {
				resp, err := r.httpClient.Head(normalizeURL(m[1]))
				if err != nil {
					return interp.Normal, interp.NewEvaluationError(0, "could not reach %s: %v", m[1], err)
				}
				resp.Body.Close()
				sc.Assign("status", resp.StatusCode)
				r.printf("%s answered %s", m[1], resp.Status)
				return interp.Normal, nil
			}),
	}
}

func normalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
