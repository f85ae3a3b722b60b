package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/document"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/family"
	"github.com/dmehra2102/prod-golang-projects/healthvault/internal/domain/insurance"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/idgen"
)

// Directory returns the built-in physician directory users search when
// granting access. Entries are static; granting creates the mutable
// doctor record.
func Directory() []doctor.Profile {
	return []doctor.Profile{
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000001"), Name: "Dr. Anjali Rao", Hospital: "Sunrise Multispeciality Hospital", Specialty: "Cardiology"},
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000002"), Name: "Dr. Vikram Shetty", Hospital: "City General Hospital", Specialty: "General Medicine"},
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000003"), Name: "Dr. Meera Nair", Hospital: "Lakeside Children's Clinic", Specialty: "Pediatrics"},
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000004"), Name: "Dr. Samuel Chen", Hospital: "City General Hospital", Specialty: "Endocrinology"},
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000005"), Name: "Dr. Priya Iyer", Hospital: "Sunrise Multispeciality Hospital", Specialty: "Dermatology"},
	}
}

// Seed loads the demo family hub: three members, an insurance policy, a
// handful of documents, and one doctor with an active share link. It is
// idempotent only in the sense that callers run it once at startup.
func Seed(
	ctx context.Context,
	ownerID uuid.UUID,
	docs *DocumentRepository,
	members *FamilyRepository,
	doctors *DoctorRepository,
	policies *InsuranceRepository,
	gen idgen.Generator,
	shareBaseURL string,
	tokenBytes int,
) error {
	dhanya := &family.Member{
		ID:           uuid.MustParse("22222222-0000-0000-0000-000000000001"),
		UserID:       ownerID,
		Name:         "Dhanya",
		Relationship: "Self",
		PhotoURL:     family.DefaultPhotoURL("Dhanya"),
	}
	krishna := &family.Member{
		ID:           uuid.MustParse("22222222-0000-0000-0000-000000000002"),
		UserID:       ownerID,
		Name:         "Krishna",
		Relationship: "Father",
		PhotoURL:     family.DefaultPhotoURL("Krishna"),
	}
	lee := &family.Member{
		ID:           uuid.MustParse("22222222-0000-0000-0000-000000000003"),
		UserID:       ownerID,
		Name:         "Lee",
		Relationship: "Son",
		PhotoURL:     family.DefaultPhotoURL("Lee"),
	}
	for _, m := range []*family.Member{dhanya, krishna, lee} {
		if err := members.Create(ctx, m); err != nil {
			return fmt.Errorf("seeding family member %s: %w", m.Name, err)
		}
	}

	policy := &insurance.Policy{
		UserID:       ownerID,
		ProviderName: "BlueShield Health",
		PolicyNumber: "BSH-2024-88341",
		Deductible: insurance.CostShare{
			Individual: 1500, Family: 3000,
			IndividualMet: 450, FamilyMet: 450,
		},
		OutOfPocketMax: insurance.CostShare{
			Individual: 6000, Family: 12000,
			IndividualMet: 450, FamilyMet: 450,
		},
		CoPay: insurance.CoPay{Primary: 25, Specialist: 50, Emergency: 250},
	}
	if err := policies.Upsert(ctx, policy); err != nil {
		return fmt.Errorf("seeding insurance policy: %w", err)
	}

	now := time.Now().UTC()

	seedDocs := []*document.HealthDocument{
		{
			UserID:            ownerID,
			FamilyMemberID:    dhanya.ID,
			FileName:          "annual_lipid_panel.pdf",
			UploadedAt:        now.AddDate(0, 0, -30),
			Type:              document.TypeLabReport,
			ReportType:        "Lipid Panel",
			Hospital:          "City General Hospital",
			ClinicalTimestamp: now.AddDate(0, 0, -31),
			ExtractedValues: map[string]document.ExtractedValue{
				"Total Cholesterol": {Value: 210.0, Unit: "mg/dL", Ref: "125 - 200", IsAbnormal: true},
				"HDL":               {Value: 55.0, Unit: "mg/dL", Ref: "40 - 60", IsAbnormal: false},
				"LDL":               {Value: 130.0, Unit: "mg/dL", Ref: "<100", IsAbnormal: true},
				"Triglycerides":     {Value: 140.0, Unit: "mg/dL", Ref: "<150", IsAbnormal: false},
			},
			Abnormalities:  []string{"Total Cholesterol", "LDL"},
			PatientSummary: "Your cholesterol is slightly above the recommended range. Diet and exercise adjustments can help bring it down.",
			DoctorSummary:  "Borderline hypercholesterolemia. Total cholesterol 210 mg/dL, LDL 130 mg/dL. Recommend lifestyle modification, recheck in 3 months.",
		},
		{
			UserID:            ownerID,
			FamilyMemberID:    krishna.ID,
			FileName:          "metformin_prescription.jpg",
			UploadedAt:        now.AddDate(0, 0, -14),
			Type:              document.TypePrescription,
			ReportType:        "Prescription",
			Hospital:          "Sunrise Multispeciality Hospital",
			ClinicalTimestamp: now.AddDate(0, 0, -14),
			Medications:       []string{"Metformin 500mg twice daily", "Atorvastatin 10mg at night"},
			Diagnosis:         []string{"Type 2 Diabetes Mellitus"},
			PatientSummary:    "Continue Metformin for blood sugar control and Atorvastatin for cholesterol, as prescribed.",
			DoctorSummary:     "T2DM maintenance. Metformin 500mg BID, Atorvastatin 10mg OD continued.",
		},
		{
			UserID:            ownerID,
			FamilyMemberID:    lee.ID,
			FileName:          "pediatric_visit_receipt.pdf",
			UploadedAt:        now.AddDate(0, 0, -7),
			Type:              document.TypeReceipt,
			ReportType:        "Consultation Receipt",
			Hospital:          "Lakeside Children's Clinic",
			ClinicalTimestamp: now.AddDate(0, 0, -7),
			BillingInfo: &document.BillingInfo{
				TotalAmount: 185,
				Items: []document.BillingItem{
					{Name: "Pediatric consultation", Amount: 120},
					{Name: "Influenza vaccine", Amount: 65},
				},
			},
			PatientSummary: "Routine pediatric visit with flu vaccination. Total billed: $185.",
			DoctorSummary:  "Well-child visit with seasonal influenza vaccination administered.",
			ClaimStatus:    document.ClaimNotSubmitted,
		},
	}
	for _, d := range seedDocs {
		d.ID = gen.NewID()
		if err := docs.Create(ctx, d); err != nil {
			return fmt.Errorf("seeding document %s: %w", d.FileName, err)
		}
	}

	token, err := gen.NewShareToken(tokenBytes)
	if err != nil {
		return fmt.Errorf("seeding doctor token: %w", err)
	}
	seedDoctor := &doctor.Doctor{
		ID:              uuid.MustParse("11111111-0000-0000-0000-000000000002"),
		UserID:          ownerID,
		Name:            "Dr. Vikram Shetty",
		Hospital:        "City General Hospital",
		Specialty:       "General Medicine",
		AccessToken:     token,
		AccessLink:      fmt.Sprintf("%s/%s", shareBaseURL, token),
		FamilyMemberIDs: []uuid.UUID{dhanya.ID, krishna.ID},
	}
	if err := doctors.Create(ctx, seedDoctor); err != nil {
		return fmt.Errorf("seeding doctor: %w", err)
	}

	return nil
}
