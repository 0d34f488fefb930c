package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/atanum62/shyama-erp-sub000/models"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostgresLotRepo struct {
	DB *sql.DB
}

func NewPostgresLotRepo(db *sql.DB) *PostgresLotRepo {
	return &PostgresLotRepo{DB: db}
}

// ------------------------ Helper Functions ------------------------

func (r *PostgresLotRepo) insertItems(tx *sql.Tx, lotID int64, items []models.LotItem) error {
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = primitive.NewObjectID().Hex()
		}
		if it.Status == "" {
			it.Status = models.StatusPending
		}
		_, err := tx.Exec(`
			INSERT INTO lot_item(
				lot_id,id,ordinal,material_id,material,color,diameter,pieces,quantity,unit,
				status,rejection_cause,return_status,
				return_challan_no,return_date,return_images,
				rereceive_challan_no,rereceive_date,rereceive_images,
				previous_color,previous_quantity,gsm
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		`, lotID, it.ID, i, it.MaterialID, it.Material, it.Color, it.Diameter, it.Pieces, it.Quantity, it.Unit,
			it.Status, nullStr(it.RejectionCause), nullStr(it.ReturnStatus),
			nullStr(it.ReturnChallanNo), it.ReturnDate, pq.Array(it.ReturnImages),
			nullStr(it.RereceiveChallanNo), it.RereceiveDate, pq.Array(it.RereceiveImages),
			nullStr(it.PreviousColor), it.PreviousQuantity, it.GSM,
		)
		if err != nil {
			return err
		}
		if err := r.insertHistory(tx, lotID, it.ID, it.History); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresLotRepo) insertHistory(tx *sql.Tx, lotID int64, itemID string, history []models.WeighEntry) error {
	for _, h := range history {
		_, err := tx.Exec(`
			INSERT INTO item_weigh_history(lot_id,item_id,action,old_weight,new_weight,created_at)
			VALUES($1,$2,$3,$4,$5,$6)
		`, lotID, itemID, h.Action, h.OldWeight, h.NewWeight, h.Timestamp)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ------------------------ LotRepository ------------------------

func (r *PostgresLotRepo) CreateLot(lot *models.Lot) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now().UTC()
	}

	err = tx.QueryRow(`
		INSERT INTO lot(lot_no,challan_no,party_id,inward_date,images,created_by,created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, lot.LotNo, lot.ChallanNo, lot.PartyID, lot.InwardDate, pq.Array(lot.Images), lot.CreatedBy, lot.CreatedAt).
		Scan(&lot.ID)
	if err != nil {
		return err
	}

	if err := r.insertItems(tx, lot.ID, lot.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveLot keeps whole-document replace semantics on the relational backend:
// the lot row is updated and every child row is reinserted inside one
// transaction, so readers never see a half-applied bulk transition.
func (r *PostgresLotRepo) SaveLot(lot *models.Lot) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE lot SET lot_no=$2,challan_no=$3,party_id=$4,inward_date=$5,images=$6,updated_at=$7
		WHERE id=$1
	`, lot.ID, lot.LotNo, lot.ChallanNo, lot.PartyID, lot.InwardDate, pq.Array(lot.Images), lot.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("lot %d does not exist", lot.ID)
	}

	if _, err := tx.Exec(`DELETE FROM item_weigh_history WHERE lot_id=$1`, lot.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM lot_item WHERE lot_id=$1`, lot.ID); err != nil {
		return err
	}
	if err := r.insertItems(tx, lot.ID, lot.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// GetLot fetches lots; single=true fetches one record
func (r *PostgresLotRepo) GetLot(filters map[string]interface{}, single bool) ([]*models.Lot, error) {
	var conds []string
	var args []interface{}
	for k, v := range filters {
		switch k {
		case "id", "lot_no", "challan_no", "party_id":
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("l.%s=$%d", k, len(args)))
		case "from":
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("l.inward_date>=$%d", len(args)))
		case "to": // exclusive
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("l.inward_date<$%d", len(args)))
		}
	}

	query := `
		SELECT l.id,l.lot_no,l.challan_no,l.party_id,l.inward_date,l.images,
		       l.created_by,l.created_at,l.updated_at,l.pdf_created_at
		FROM lot l`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY l.inward_date DESC, l.id DESC"
	if single {
		query += " LIMIT 1"
	}

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Lot
	for rows.Next() {
		lot := &models.Lot{}
		if err := rows.Scan(
			&lot.ID, &lot.LotNo, &lot.ChallanNo, &lot.PartyID, &lot.InwardDate,
			pq.Array(&lot.Images), &lot.CreatedBy, &lot.CreatedAt, &lot.UpdatedAt, &lot.PdfCreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, lot := range out {
		if err := r.loadItems(lot); err != nil {
			return nil, err
		}
		r.populateNested(lot)
	}
	return out, nil
}

func (r *PostgresLotRepo) loadItems(lot *models.Lot) error {
	rows, err := r.DB.Query(`
		SELECT id,material_id,material,color,diameter,pieces,quantity,unit,
		       status,rejection_cause,return_status,
		       return_challan_no,return_date,return_images,
		       rereceive_challan_no,rereceive_date,rereceive_images,
		       previous_color,previous_quantity,gsm
		FROM lot_item WHERE lot_id=$1 ORDER BY ordinal
	`, lot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	lot.Items = nil
	for rows.Next() {
		var it models.LotItem
		var cause, retStatus, retChallan, rereChallan, prevColor sql.NullString
		if err := rows.Scan(
			&it.ID, &it.MaterialID, &it.Material, &it.Color, &it.Diameter, &it.Pieces, &it.Quantity, &it.Unit,
			&it.Status, &cause, &retStatus,
			&retChallan, &it.ReturnDate, pq.Array(&it.ReturnImages),
			&rereChallan, &it.RereceiveDate, pq.Array(&it.RereceiveImages),
			&prevColor, &it.PreviousQuantity, &it.GSM,
		); err != nil {
			return err
		}
		it.RejectionCause = cause.String
		it.ReturnStatus = retStatus.String
		it.ReturnChallanNo = retChallan.String
		it.RereceiveChallanNo = rereChallan.String
		it.PreviousColor = prevColor.String
		lot.Items = append(lot.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return r.loadHistory(lot)
}

func (r *PostgresLotRepo) loadHistory(lot *models.Lot) error {
	rows, err := r.DB.Query(`
		SELECT item_id,action,old_weight,new_weight,created_at
		FROM item_weigh_history WHERE lot_id=$1 ORDER BY created_at, id
	`, lot.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	byItem := make(map[string][]models.WeighEntry)
	for rows.Next() {
		var itemID string
		var h models.WeighEntry
		if err := rows.Scan(&itemID, &h.Action, &h.OldWeight, &h.NewWeight, &h.Timestamp); err != nil {
			return err
		}
		byItem[itemID] = append(byItem[itemID], h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range lot.Items {
		lot.Items[i].History = byItem[lot.Items[i].ID]
	}
	return nil
}

func (r *PostgresLotRepo) populateNested(lot *models.Lot) {
	if lot.PartyID != nil && *lot.PartyID != 0 {
		var p models.Party
		err := r.DB.QueryRow(`SELECT id,name,gstin,city,mobile,created_at FROM party WHERE id=$1`, *lot.PartyID).
			Scan(&p.ID, &p.Name, &p.GSTIN, &p.City, &p.Mobile, &p.CreatedAt)
		if err == nil {
			lot.Party = &p
		}
	}
	if lot.CreatedBy != 0 {
		var u models.AppUser
		err := r.DB.QueryRow(`SELECT id,name,email,role,created_at FROM app_user WHERE id=$1`, lot.CreatedBy).
			Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
		if err == nil {
			lot.CreatedByUser = &u
		}
	}
}

func (r *PostgresLotRepo) UpdatePDFCreatedAt(lotID int64, t time.Time) error {
	_, err := r.DB.Exec(`UPDATE lot SET pdf_created_at=$2 WHERE id=$1`, lotID, t)
	return err
}

func (r *PostgresLotRepo) DeleteLot(lotID int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM item_weigh_history WHERE lot_id=$1`, lotID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM lot_item WHERE lot_id=$1`, lotID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM lot WHERE id=$1`, lotID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresLotRepo) DeleteLotItem(lotID int64, itemID string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM item_weigh_history WHERE lot_id=$1 AND item_id=$2`, lotID, itemID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM lot_item WHERE lot_id=$1 AND id=$2`, lotID, itemID); err != nil {
		return err
	}
	return tx.Commit()
}
