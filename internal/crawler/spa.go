package crawler

import (
	"time"

	"github.com/go-rod/rod"
)

// detectSPA checks for the markers common client-side frameworks leave.
func detectSPA(page *rod.Page) bool {
	res, err := page.Eval(`() => {
		if (window.__REACT_DEVTOOLS_GLOBAL_HOOK__ || document.querySelector('[data-reactroot]') || document.querySelector('#__next')) return true;
		if (window.__VUE__ || document.querySelector('[data-v-app]')) return true;
		if (window.ng || document.querySelector('[ng-version]') || document.querySelector('app-root')) return true;
		if (document.querySelector('[class*="svelte-"]')) return true;
		return false;
	}`)
	if err != nil {
		return false
	}
	return res.Value.Bool()
}

// waitForInteractiveElements polls until a visible link or text field
// exists, or timeout elapses.
func waitForInteractiveElements(page *rod.Page, timeout time.Duration) {
	ctx := page.GetContext()
	deadline := time.Now().Add(timeout)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for time.Now().Before(deadline) {
		res, err := page.Eval(`() => {
			let visible = 0;
			document.querySelectorAll('input:not([type="hidden"]), textarea, a[href]').forEach(el => {
				if (el.offsetParent) visible++;
			});
			return visible;
		}`)
		if err != nil {
			return
		}
		if res.Value.Int() > 0 {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}
