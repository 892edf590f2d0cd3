package engine

import "github.com/datallboy/otmget/internal/domain"

type DownloadJob struct {
	Index   int // position in the submitted target list
	Target  domain.Target
	DestDir string
}

type DownloadResult struct {
	Job     DownloadJob
	Outcome domain.Outcome
}
