package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const memberIDHeader = "X-Member-ID"

// Client talks to the talent-match HTTP API. The admin key is sent as a
// Bearer token; recommendations are requested on behalf of a member.
type Client struct {
	http *resty.Client
}

func New(baseURL, adminKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if adminKey != "" {
		c.SetAuthToken(adminKey)
	}
	return &Client{http: c}
}

type RebuildResult struct {
	Projects    *int64
	Freelancers *int64
}

type Stats struct {
	Projects    int64
	Freelancers int64
}

type RecommendRequest struct {
	MemberID  uint
	ProjectID uint // 0 means the client's latest project
	Page      int
	Size      int
	Match     string
}

// RecommendedItem is either a project or a freelancer; Label is the project
// title or the freelancer's job.
type RecommendedItem struct {
	ID    uint
	Label string
	Score float64
}

type Recommendation struct {
	Kind  string
	Page  int
	Size  int
	Total int64
	Items []RecommendedItem
}

// UpsertProject returns the rows written: 0 when the project does not exist.
func (c *Client) UpsertProject(ctx context.Context, id uint) (int64, error) {
	return c.upsert(ctx, "/admin/search-index/projects/"+strconv.FormatUint(uint64(id), 10))
}

// UpsertFreelancer returns the rows written: 0 when the freelancer does not
// exist.
func (c *Client) UpsertFreelancer(ctx context.Context, id uint) (int64, error) {
	return c.upsert(ctx, "/admin/search-index/freelancers/"+strconv.FormatUint(uint64(id), 10))
}

func (c *Client) upsert(ctx context.Context, path string) (int64, error) {
	body, err := c.do(c.http.R().SetContext(ctx), "POST", path)
	if err != nil {
		return 0, err
	}
	return gjson.GetBytes(body, "data.rows").Int(), nil
}

func (c *Client) Rebuild(ctx context.Context, target string) (RebuildResult, error) {
	req := c.http.R().SetContext(ctx)
	if target != "" {
		req.SetQueryParam("target", target)
	}
	body, err := c.do(req, "POST", "/admin/search-index/rebuild")
	if err != nil {
		return RebuildResult{}, err
	}

	var res RebuildResult
	if v := gjson.GetBytes(body, "data.projects"); v.Exists() {
		n := v.Int()
		res.Projects = &n
	}
	if v := gjson.GetBytes(body, "data.freelancers"); v.Exists() {
		n := v.Int()
		res.Freelancers = &n
	}
	return res, nil
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	body, err := c.do(c.http.R().SetContext(ctx), "GET", "/admin/search-index/stats")
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Projects:    gjson.GetBytes(body, "data.projects").Int(),
		Freelancers: gjson.GetBytes(body, "data.freelancers").Int(),
	}, nil
}

func (c *Client) Recommend(ctx context.Context, in RecommendRequest) (Recommendation, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(memberIDHeader, strconv.FormatUint(uint64(in.MemberID), 10))
	if in.ProjectID != 0 {
		req.SetQueryParam("project_id", strconv.FormatUint(uint64(in.ProjectID), 10))
	}
	if in.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(in.Page))
	}
	if in.Size > 0 {
		req.SetQueryParam("size", strconv.Itoa(in.Size))
	}
	if in.Match != "" {
		req.SetQueryParam("match", in.Match)
	}

	body, err := c.do(req, "GET", "/api/recommendations")
	if err != nil {
		return Recommendation{}, err
	}

	out := Recommendation{
		Kind:  gjson.GetBytes(body, "data.kind").String(),
		Page:  int(gjson.GetBytes(body, "pagination.page").Int()),
		Size:  int(gjson.GetBytes(body, "pagination.page_size").Int()),
		Total: gjson.GetBytes(body, "pagination.total_items").Int(),
	}
	idKey, labelKey := "project_id", "title"
	if out.Kind == "freelancers" {
		idKey, labelKey = "freelancer_id", "job"
	}
	for _, it := range gjson.GetBytes(body, "data.items").Array() {
		out.Items = append(out.Items, RecommendedItem{
			ID:    uint(it.Get(idKey).Uint()),
			Label: it.Get(labelKey).String(),
			Score: it.Get("score").Float(),
		})
	}
	return out, nil
}

func (c *Client) do(req *resty.Request, method, path string) ([]byte, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := gjson.GetBytes(resp.Body(), "message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode(), msg)
	}
	return resp.Body(), nil
}
