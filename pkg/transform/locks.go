package transform

import "github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"

// applyLocks runs the two lock operations in order: code rewrite for
// combination locks, then removal of every lock. When both are requested
// the rewrite would be dead work, so it is skipped and the skip reported.
func (p *Pipeline) applyLocks(doc *paste.Document, req *Request, summary *Summary) {
	if req.LockCode != "" {
		if req.RemoveAllLocks {
			summary.LockCodeSkipped = true
			p.logger.Warn().Msg("--lock-code ignored because --lock-remove is set")
		} else {
			for _, e := range doc.Entities() {
				if e.Lock().HasCode() && e.Lock().Code() != req.LockCode {
					e.Lock().SetCode(req.LockCode)
					summary.LockCodesSet++
				}
			}
		}
	}

	if req.RemoveAllLocks {
		for _, e := range doc.Entities() {
			if e.Lock() != nil {
				e.RemoveLock()
				summary.LocksRemoved++
			}
		}
	}
}
