package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/dbutil"
	"github.com/avverma/fitrag/internal/pkg/errs"
)

type PlanRepo struct {
	db *sql.DB
}

func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// Save stores a plan and retires any previous active plan of the same
// type, so each user holds at most one active plan per type.
func (r *PlanRepo) Save(ctx context.Context, plan *model.Plan) error {
	deactivate := map[string]interface{}{"active": false}
	where := map[string]interface{}{
		"user_id":   plan.UserID,
		"plan_type": plan.PlanType,
		"active":    true,
	}
	sqlStr, args, err := builder.BuildUpdate("plans", where, deactivate)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return err
	}

	sources, err := json.Marshal(plan.Sources)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":        plan.ID,
		"user_id":   plan.UserID,
		"plan_type": plan.PlanType,
		"name":      plan.Name,
		"content":   plan.Content,
		"sources":   sources,
		"active":    plan.Active,
		"ctime":     plan.Ctime,
	}
	sqlStr, args, err = builder.BuildInsert("plans", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *PlanRepo) GetByID(ctx context.Context, planID, userID string) (*model.Plan, error) {
	where := map[string]interface{}{"id": planID, "user_id": userID}
	return r.getOne(ctx, where)
}

// GetActive returns the current active plan of the given type.
func (r *PlanRepo) GetActive(ctx context.Context, userID, planType string) (*model.Plan, error) {
	where := map[string]interface{}{
		"user_id":   userID,
		"plan_type": planType,
		"active":    true,
		"_orderby":  "ctime DESC",
		"_limit":    []uint{1},
	}
	return r.getOne(ctx, where)
}

func (r *PlanRepo) List(ctx context.Context, userID string, limit int) ([]model.Plan, error) {
	if limit <= 0 {
		limit = 20
	}
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "ctime DESC",
		"_limit":   []uint{uint(limit)},
	}
	sqlStr, args, err := builder.BuildSelect("plans", where, planColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var plans []model.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

func (r *PlanRepo) Delete(ctx context.Context, planID, userID string) error {
	where := map[string]interface{}{"id": planID, "user_id": userID}
	sqlStr, args, err := builder.BuildDelete("plans", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

var planColumns = []string{"id", "user_id", "plan_type", "name", "content", "sources", "active", "ctime"}

func (r *PlanRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Plan, error) {
	sqlStr, args, err := builder.BuildSelect("plans", where, planColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, errs.ErrNotFound
	}
	return scanPlan(rows)
}

func scanPlan(rows *sql.Rows) (*model.Plan, error) {
	var plan model.Plan
	var sources []byte
	if err := rows.Scan(&plan.ID, &plan.UserID, &plan.PlanType, &plan.Name, &plan.Content, &sources, &plan.Active, &plan.Ctime); err != nil {
		return nil, err
	}
	if len(sources) > 0 {
		if err := json.Unmarshal(sources, &plan.Sources); err != nil {
			return nil, err
		}
	}
	return &plan, nil
}
