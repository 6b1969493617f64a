package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/jimmy058910/replitballgame-sub004/internal/constants"
	"github.com/jimmy058910/replitballgame-sub004/internal/domain"
	"github.com/jimmy058910/replitballgame-sub004/internal/repository"
	"github.com/jimmy058910/replitballgame-sub004/internal/standings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Cascade stage names, applied top-down in this order. Each stage is one
// transaction and one checkpoint; a rerun after a crash skips completed
// stages and replays the rest from the persisted plan.
const (
	StageDiv1Relegation = "division_1_relegation"
	StageDiv2Promotion  = "division_2_promotion"
	StageDiv2Relegation = "division_2_relegation"
	StageDiv3Promotion  = "division_3_promotion_pool"
	StageBalance        = "subdivision_balance"
)

func stdCascadeStage(division int) string {
	return fmt.Sprintf("division_%d_cascade", division)
}

// PlannedMove shifts one team exactly one division tier. Subdivision is the
// balanced target assignment, decided once for the whole plan.
type PlannedMove struct {
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	FromDivision int    `json:"from_division"`
	ToDivision   int    `json:"to_division"`
	Subdivision  string `json:"subdivision"`
}

// PlannedAITeam is a synthetic team minted to pad an under-filled
// subdivision to its full size.
type PlannedAITeam struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Division    int    `json:"division"`
	Subdivision string `json:"subdivision"`
}

type CascadeStage struct {
	Name  string         `json:"name"`
	Moves []*PlannedMove `json:"moves"`
}

// CascadePlan is the full promotion/relegation decision for one rollover,
// computed from a single pre-cascade snapshot and persisted before any
// mutation so a retry never replans from half-moved state.
type CascadePlan struct {
	SeasonID string          `json:"season_id"`
	Stages   []CascadeStage  `json:"stages"`
	AITeams  []PlannedAITeam `json:"ai_teams"`
}

type CascadeSummary struct {
	Promoted  int
	Relegated int
	AICreated int
	Errors    []string
}

type CascadeService struct {
	teams       TeamStore
	games       GameStore
	checkpoints CheckpointStore
	plans       PlanStore
	purge       PurgeStore
	logger      zerolog.Logger
}

func NewCascadeService(teams TeamStore, games GameStore, checkpoints CheckpointStore, plans PlanStore, purge PurgeStore, logger zerolog.Logger) *CascadeService {
	return &CascadeService{teams: teams, games: games, checkpoints: checkpoints, plans: plans, purge: purge, logger: logger}
}

// Run executes the promotion/relegation cascade for the season that just
// ended. Stages apply sequentially; later stages depend on the exact
// assignments earlier ones produce, so there is no parallel fan-out.
func (s *CascadeService) Run(ctx context.Context, season *domain.Season) (*CascadeSummary, error) {
	plan, err := s.loadOrBuildPlan(ctx, season)
	if err != nil {
		return nil, err
	}

	done, err := s.checkpoints.Completed(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("loading cascade checkpoints: %w", err)
	}

	summary := &CascadeSummary{}
	for _, stage := range plan.Stages {
		if done[stage.Name] {
			s.logger.Info().Str("stage", stage.Name).Msg("cascade stage already completed, skipping")
			continue
		}

		updates := make([]repository.PlacementUpdate, 0, len(stage.Moves))
		for _, m := range stage.Moves {
			updates = append(updates, repository.PlacementUpdate{
				TeamID:      m.TeamID,
				Division:    m.ToDivision,
				Subdivision: m.Subdivision,
			})
		}

		if err := s.teams.UpdatePlacements(ctx, updates); err != nil {
			return summary, fmt.Errorf("applying cascade stage %s: %w", stage.Name, err)
		}
		if err := s.checkpoints.Mark(ctx, season.ID, stage.Name); err != nil {
			return summary, err
		}

		for _, m := range stage.Moves {
			if m.ToDivision < m.FromDivision {
				summary.Promoted++
			} else {
				summary.Relegated++
			}
		}
		s.logger.Info().Str("stage", stage.Name).Int("moves", len(stage.Moves)).Msg("cascade stage applied")
	}

	if err := s.applyBalance(ctx, season, plan, done, summary); err != nil {
		return summary, err
	}

	s.logger.Info().
		Int("promoted", summary.Promoted).
		Int("relegated", summary.Relegated).
		Int("ai_created", summary.AICreated).
		Msg("cascade complete")
	return summary, nil
}

// applyBalance creates the synthetic teams the balancer planned for padded
// subdivisions. Per-team finance seeding failures are logged and skipped.
func (s *CascadeService) applyBalance(ctx context.Context, season *domain.Season, plan *CascadePlan, done map[string]bool, summary *CascadeSummary) error {
	if done[StageBalance] {
		s.logger.Info().Str("stage", StageBalance).Msg("cascade stage already completed, skipping")
		return nil
	}
	if len(plan.AITeams) == 0 {
		return s.checkpoints.Mark(ctx, season.ID, StageBalance)
	}

	now := time.Now()
	created := make([]domain.Team, 0, len(plan.AITeams))
	for _, ai := range plan.AITeams {
		created = append(created, domain.Team{
			ID:          ai.ID,
			Name:        ai.Name,
			Division:    ai.Division,
			Subdivision: ai.Subdivision,
			IsAI:        true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.teams.InsertBatch(ctx, created); err != nil {
		return fmt.Errorf("creating synthetic teams: %w", err)
	}
	summary.AICreated = len(created)

	for _, t := range created {
		if err := s.purge.SeedFinances(ctx, t.ID, 0); err != nil {
			s.logger.Error().Err(err).Str("team_id", t.ID).Msg("failed to seed synthetic team finances")
			summary.Errors = append(summary.Errors, fmt.Sprintf("seed finances %s: %v", t.ID, err))
		}
	}

	return s.checkpoints.Mark(ctx, season.ID, StageBalance)
}

func (s *CascadeService) loadOrBuildPlan(ctx context.Context, season *domain.Season) (*CascadePlan, error) {
	raw, err := s.plans.Get(ctx, season.ID)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		var plan CascadePlan
		if err := json.Unmarshal(raw, &plan); err != nil {
			return nil, fmt.Errorf("decoding persisted cascade plan: %w", err)
		}
		s.logger.Info().Str("season_id", season.ID).Msg("resuming cascade from persisted plan")
		return &plan, nil
	}

	byDivision := make(map[int][]domain.Team, constants.DivisionCount)
	for div := constants.TopDivision; div <= constants.FloorDivision; div++ {
		teams, err := s.teams.ByDivision(ctx, div)
		if err != nil {
			return nil, fmt.Errorf("snapshotting division %d: %w", div, err)
		}
		byDivision[div] = teams
	}

	winners, err := s.playoffWinners(ctx, season, byDivision)
	if err != nil {
		return nil, err
	}

	plan, err := PlanCascade(season.ID, byDivision, winners)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encoding cascade plan: %w", err)
	}
	if err := s.plans.Save(ctx, season.ID, encoded); err != nil {
		return nil, err
	}
	return plan, nil
}

// playoffWinners maps each subdivision to its playoff tournament winner: the
// winner of the subdivision's latest completed playoff game. Later rounds
// are scheduled after earlier results, so the final game decides.
func (s *CascadeService) playoffWinners(ctx context.Context, season *domain.Season, byDivision map[int][]domain.Team) (map[string]string, error) {
	games, err := s.games.BySeason(ctx, season.ID, domain.GamePlayoff)
	if err != nil {
		return nil, fmt.Errorf("loading playoff games: %w", err)
	}

	teamKey := make(map[string]string)
	for div, teams := range byDivision {
		for _, t := range teams {
			teamKey[t.ID] = subKey(div, t.Subdivision)
		}
	}

	// games arrive ordered by day then kickoff; later games overwrite
	winners := make(map[string]string)
	for _, g := range games {
		winnerID := g.WinnerID()
		if winnerID == "" {
			continue
		}
		if key, ok := teamKey[winnerID]; ok {
			winners[key] = winnerID
		}
	}
	return winners, nil
}

func subKey(division int, subdivision string) string {
	return fmt.Sprintf("%d:%s", division, subdivision)
}

// PlanCascade computes the full top-down promotion/relegation waterfall from
// a pre-cascade snapshot. Pure: no store access, so identical snapshots
// yield identical plans (modulo freshly minted AI team IDs).
//
// Stage order:
//  1. bottom 6 of the 16-team top division relegate to division 2
//  2. top 2 of each division-2 subdivision promote to division 1
//  3. bottom 4 of each division-2 subdivision relegate to division 3
//  4. pooled division-3 candidates promote to division 2
//  5. divisions 3-7 relegate bottom 4 per subdivision and pull a capped
//     promotion pool from the division below; division 8 only feeds upward
func PlanCascade(seasonID string, byDivision map[int][]domain.Team, playoffWinners map[string]string) (*CascadePlan, error) {
	p := &planner{
		byDivision: byDivision,
		winners:    playoffWinners,
		moved:      make(map[string]bool),
		arrivals:   make(map[int][]*PlannedMove),
	}

	plan := &CascadePlan{SeasonID: seasonID}
	plan.Stages = append(plan.Stages, p.div1Relegation())
	plan.Stages = append(plan.Stages, p.div2Promotion())
	plan.Stages = append(plan.Stages, p.div2Relegation())
	plan.Stages = append(plan.Stages, p.div3PromotionPool(len(plan.Stages[2].Moves)))
	for div := 3; div <= 7; div++ {
		plan.Stages = append(plan.Stages, p.standardCascade(div))
	}

	aiTeams, err := p.balance()
	if err != nil {
		return nil, err
	}
	plan.AITeams = aiTeams

	if err := validatePlan(plan, byDivision); err != nil {
		return nil, err
	}
	return plan, nil
}

type planner struct {
	byDivision map[int][]domain.Team
	winners    map[string]string
	moved      map[string]bool
	// arrivals per target division, in stage order; Subdivision is filled
	// in by balance() once all moves are known
	arrivals map[int][]*PlannedMove
}

func (p *planner) remaining(teams []domain.Team) []domain.Team {
	out := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		if !p.moved[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (p *planner) move(stage *CascadeStage, team domain.Team, from, to int) {
	m := &PlannedMove{TeamID: team.ID, TeamName: team.Name, FromDivision: from, ToDivision: to}
	stage.Moves = append(stage.Moves, m)
	p.moved[team.ID] = true
	p.arrivals[to] = append(p.arrivals[to], m)
}

// groupSubdivisions splits a division snapshot into per-subdivision slices
// with a deterministic name order.
func groupSubdivisions(teams []domain.Team) (map[string][]domain.Team, []string) {
	bySub := make(map[string][]domain.Team)
	var order []string
	for _, t := range teams {
		if _, seen := bySub[t.Subdivision]; !seen {
			order = append(order, t.Subdivision)
		}
		bySub[t.Subdivision] = append(bySub[t.Subdivision], t)
	}
	sort.Strings(order)
	return bySub, order
}

func (p *planner) div1Relegation() CascadeStage {
	stage := CascadeStage{Name: StageDiv1Relegation}
	ranked := standings.RankTeams(p.byDivision[1])
	count := constants.Div1RelegationCount
	if count > len(ranked) {
		count = len(ranked)
	}
	for _, t := range ranked[len(ranked)-count:] {
		p.move(&stage, t, 1, 2)
	}
	return stage
}

func (p *planner) div2Promotion() CascadeStage {
	stage := CascadeStage{Name: StageDiv2Promotion}
	bySub, order := groupSubdivisions(p.byDivision[2])
	for _, sub := range order {
		ranked := standings.RankTeams(bySub[sub])
		for i := 0; i < constants.Div2PromotionPerSub && i < len(ranked); i++ {
			p.move(&stage, ranked[i], 2, 1)
		}
	}
	return stage
}

func (p *planner) div2Relegation() CascadeStage {
	stage := CascadeStage{Name: StageDiv2Relegation}
	bySub, order := groupSubdivisions(p.byDivision[2])
	for _, sub := range order {
		ranked := standings.RankTeams(p.remaining(bySub[sub]))
		count := constants.Div2RelegationPerSub
		if count > len(ranked) {
			count = len(ranked)
		}
		for _, t := range ranked[len(ranked)-count:] {
			p.move(&stage, t, 2, 3)
		}
	}
	return stage
}

func (p *planner) div3PromotionPool(needed int) CascadeStage {
	stage := CascadeStage{Name: StageDiv3Promotion}
	pool := p.promotionPool(3)
	if needed > len(pool) {
		needed = len(pool)
	}
	for _, t := range pool[:needed] {
		p.move(&stage, t, 3, 2)
	}
	return stage
}

// standardCascade handles one rung of the divisions 3-7 waterfall: bottom 4
// of every subdivision drop a tier, and a same-rule pool from the division
// below fills exactly the vacancies created.
func (p *planner) standardCascade(division int) CascadeStage {
	stage := CascadeStage{Name: stdCascadeStage(division)}

	bySub, order := groupSubdivisions(p.byDivision[division])
	vacancies := 0
	for _, sub := range order {
		ranked := standings.RankTeams(p.remaining(bySub[sub]))
		count := constants.StdRelegationPerSub
		if count > len(ranked) {
			count = len(ranked)
		}
		for _, t := range ranked[len(ranked)-count:] {
			p.move(&stage, t, division, division+1)
		}
		vacancies += count
	}

	pool := p.promotionPool(division + 1)
	if vacancies > len(pool) {
		vacancies = len(pool)
	}
	for _, t := range pool[:vacancies] {
		p.move(&stage, t, division+1, division)
	}
	return stage
}

// promotionPool gathers up to 2 candidates per subdivision of a division:
// the regular-season first place and the subdivision's playoff winner. When
// one team holds both titles the regular-season runner-up substitutes, so a
// subdivision with enough teams always offers 2 candidates. The pool is
// ranked by win percentage, tie-broken by points minus losses, then name.
func (p *planner) promotionPool(division int) []domain.Team {
	bySub, order := groupSubdivisions(p.byDivision[division])

	var pool []domain.Team
	for _, sub := range order {
		ranked := standings.RankTeams(p.remaining(bySub[sub]))
		if len(ranked) == 0 {
			continue
		}

		first := ranked[0]
		pool = append(pool, first)

		second := domain.Team{}
		if winnerID, ok := p.winners[subKey(division, sub)]; ok && winnerID != first.ID {
			for _, t := range ranked[1:] {
				if t.ID == winnerID {
					second = t
					break
				}
			}
		}
		if second.ID == "" && len(ranked) > 1 {
			// playoff winner doubles as regular-season champion (or is
			// already moving), the runner-up substitutes
			second = ranked[1]
		}
		if second.ID != "" {
			pool = append(pool, second)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.WinPct() != b.WinPct() {
			return a.WinPct() > b.WinPct()
		}
		if a.Points-a.Losses != b.Points-b.Losses {
			return a.Points-a.Losses > b.Points-b.Losses
		}
		return a.Name < b.Name
	})
	return pool
}

// balance assigns every arrival a target subdivision and mints synthetic
// teams for the last partial group of each rebuilt division.
func (p *planner) balance() ([]PlannedAITeam, error) {
	var aiTeams []PlannedAITeam
	aiSeq := 0

	for div := constants.TopDivision; div <= constants.FloorDivision; div++ {
		arrivals := p.arrivals[div]
		if len(arrivals) == 0 {
			continue
		}

		switch div {
		case 1:
			// single cohort, everyone joins the existing subdivision
			name := "alpha"
			if teams := p.byDivision[1]; len(teams) > 0 {
				name = teams[0].Subdivision
			}
			for _, m := range arrivals {
				m.Subdivision = name
			}

		case 2:
			p.balanceFixedSubdivisions(div, arrivals)

		default:
			created, seq := p.balanceNewSubdivisions(div, arrivals, aiSeq)
			aiTeams = append(aiTeams, created...)
			aiSeq = seq
		}
	}

	return aiTeams, nil
}

// balanceFixedSubdivisions refills the fixed 16-team subdivisions of
// division 2 by assigning each arrival to the emptiest subdivision.
func (p *planner) balanceFixedSubdivisions(division int, arrivals []*PlannedMove) {
	bySub, order := groupSubdivisions(p.byDivision[division])
	if len(order) == 0 {
		order = []string{"alpha", "beta", "gamma"}
	}

	counts := make(map[string]int, len(order))
	for _, sub := range order {
		counts[sub] = len(p.remaining(bySub[sub]))
	}

	for _, m := range arrivals {
		target := order[0]
		for _, sub := range order[1:] {
			if counts[sub] < counts[target] {
				target = sub
			}
		}
		m.Subdivision = target
		counts[target]++
	}
}

// balanceNewSubdivisions groups arrivals into fresh 8-team subdivisions in
// arrival order and pads the final partial one with synthetic teams.
func (p *planner) balanceNewSubdivisions(division int, arrivals []*PlannedMove, aiSeq int) ([]PlannedAITeam, int) {
	_, existing := groupSubdivisions(p.byDivision[division])
	nextIdx := len(existing)

	var aiTeams []PlannedAITeam
	size := constants.SubdivisionSize
	for start := 0; start < len(arrivals); start += size {
		name := subdivisionName(nextIdx)
		nextIdx++

		end := start + size
		if end > len(arrivals) {
			end = len(arrivals)
		}
		for _, m := range arrivals[start:end] {
			m.Subdivision = name
		}

		for pad := end - start; pad < size; pad++ {
			aiTeams = append(aiTeams, PlannedAITeam{
				ID:          uuid.New().String(),
				Name:        aiTeamName(aiSeq),
				Division:    division,
				Subdivision: name,
			})
			aiSeq++
		}
	}
	return aiTeams, aiSeq
}

var subdivisionNames = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta",
	"eta", "theta", "iota", "kappa", "lambda", "mu",
}

func subdivisionName(idx int) string {
	if idx < len(subdivisionNames) {
		return subdivisionNames[idx]
	}
	return fmt.Sprintf("league_%d", idx+1)
}

var (
	aiNameAdjectives = []string{"Iron", "Shadow", "Crimson", "Golden", "Storm", "Frost", "Ember", "Night"}
	aiNameNouns      = []string{"Wolves", "Hawks", "Titans", "Raiders", "Spectres", "Vipers", "Golems", "Wardens"}
)

func aiTeamName(seq int) string {
	adj := aiNameAdjectives[seq%len(aiNameAdjectives)]
	noun := aiNameNouns[(seq/len(aiNameAdjectives))%len(aiNameNouns)]
	return fmt.Sprintf("%s %s %d", adj, noun, seq+1)
}

// validatePlan enforces the cascade invariants before anything is applied:
// no team moves twice, every move shifts exactly one tier, and the total
// team count is conserved (synthetic additions aside).
func validatePlan(plan *CascadePlan, byDivision map[int][]domain.Team) error {
	known := make(map[string]bool)
	for _, teams := range byDivision {
		for _, t := range teams {
			known[t.ID] = true
		}
	}

	seen := make(map[string]bool)
	for _, stage := range plan.Stages {
		for _, m := range stage.Moves {
			if !known[m.TeamID] {
				return fmt.Errorf("stage %s moves unknown team %s", stage.Name, m.TeamID)
			}
			if seen[m.TeamID] {
				return fmt.Errorf("stage %s moves team %s twice", stage.Name, m.TeamID)
			}
			seen[m.TeamID] = true

			diff := m.ToDivision - m.FromDivision
			if diff != 1 && diff != -1 {
				return fmt.Errorf("stage %s moves team %s across %d tiers", stage.Name, m.TeamID, diff)
			}
			if m.Subdivision == "" {
				return fmt.Errorf("stage %s leaves team %s without a subdivision", stage.Name, m.TeamID)
			}
		}
	}
	return nil
}
