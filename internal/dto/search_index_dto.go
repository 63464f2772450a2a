package dto

type UpsertResultDTO struct {
	ID      uint  `json:"id"`
	Rows    int64 `json:"rows"`
	Indexed bool  `json:"indexed"`
}

type RebuildResultDTO struct {
	Projects    *int64 `json:"projects,omitempty"`
	Freelancers *int64 `json:"freelancers,omitempty"`
}

type IndexStatsDTO struct {
	Projects    int64 `json:"projects"`
	Freelancers int64 `json:"freelancers"`
}
