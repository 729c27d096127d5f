package repository

import (
	"context"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	domainsCollection = "domains"
	reportsCollection = "reports"
)

// Firestore implements Repository interface with Firestore. Each L1 domain
// is stored as one document holding its areas and capabilities.
type Firestore struct {
	client *firestore.Client
	prefix string
}

// FirestoreOption configures NewFirestore
type FirestoreOption func(*Firestore)

// WithCollectionPrefix namespaces the domains and reports collections, so
// several desks can share one database
func WithCollectionPrefix(prefix string) FirestoreOption {
	return func(f *Firestore) {
		f.prefix = prefix
	}
}

var _ interfaces.Repository = (*Firestore)(nil)

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string, opts ...FirestoreOption) (*Firestore, error) {
	logger := ctxlog.From(ctx)
	repo := &Firestore{}
	for _, opt := range opts {
		opt(repo)
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on permission problems; an empty collection is fine
	repo.client = client
	_, err = repo.domains().Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
		"prefix", repo.prefix,
	)

	return repo, nil
}

func (f *Firestore) domains() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + domainsCollection)
}

func (f *Firestore) reports() *firestore.CollectionRef {
	return f.client.Collection(f.prefix + reportsCollection)
}

// GetDataset reads every domain document and assembles the dataset in ID order
func (f *Firestore) GetDataset(ctx context.Context) (*model.Dataset, error) {
	iter := f.domains().Documents(ctx)
	defer iter.Stop()

	var domains []*model.Domain
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate domains")
		}

		var domain model.Domain
		if err := doc.DataTo(&domain); err != nil {
			return nil, goerr.Wrap(err, "failed to decode domain", goerr.V("docID", doc.Ref.ID))
		}
		domains = append(domains, &domain)
	}

	if len(domains) == 0 {
		return nil, goerr.Wrap(model.ErrDatasetNotFound, "no domains stored in firestore")
	}

	// Document order is by document ID string; restore numeric ID order
	sort.Slice(domains, func(i, j int) bool {
		return domains[i].ID.Compare(domains[j].ID) < 0
	})

	return &model.Dataset{Domains: domains}, nil
}

// PutDataset replaces the stored dataset in a single transaction so readers
// never see a partial matrix. Domains missing from the new dataset are removed.
func (f *Firestore) PutDataset(ctx context.Context, dataset *model.Dataset) error {
	if dataset == nil {
		return goerr.New("dataset is nil")
	}
	if err := dataset.Validate(); err != nil {
		return goerr.Wrap(err, "invalid dataset")
	}

	keep := make(map[string]bool, len(dataset.Domains))
	for _, dom := range dataset.Domains {
		keep[dom.ID.String()] = true
	}

	collection := f.domains()
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads must happen before writes in a transaction
		existing, err := tx.Documents(collection).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to list existing domains")
		}

		for _, doc := range existing {
			if !keep[doc.Ref.ID] {
				if err := tx.Delete(doc.Ref); err != nil {
					return goerr.Wrap(err, "failed to delete stale domain", goerr.V("docID", doc.Ref.ID))
				}
			}
		}

		for _, dom := range dataset.Domains {
			if err := tx.Set(collection.Doc(dom.ID.String()), dom); err != nil {
				return goerr.Wrap(err, "failed to save domain", goerr.V("id", dom.ID))
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put dataset to firestore")
	}

	ctxlog.From(ctx).Info("Dataset stored in firestore",
		"domains", len(dataset.Domains),
		"capabilities", len(dataset.Capabilities()),
	)
	return nil
}

// GetCapability loads the owning domain document and looks up the capability
func (f *Firestore) GetCapability(ctx context.Context, id types.CapabilityID) (*model.Capability, error) {
	if id == "" {
		return nil, goerr.New("capability ID is empty")
	}

	root, _, _ := strings.Cut(id.String(), ".")
	doc, err := f.domains().Doc(root + ".0").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrCapabilityNotFound, "failed to get capability", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get domain from firestore", goerr.V("id", id))
	}

	var domain model.Domain
	if err := doc.DataTo(&domain); err != nil {
		return nil, goerr.Wrap(err, "failed to decode domain", goerr.V("docID", doc.Ref.ID))
	}

	for _, c := range domain.Capabilities() {
		if c.ID == id {
			return c, nil
		}
	}

	return nil, goerr.Wrap(model.ErrCapabilityNotFound, "failed to get capability", goerr.V("id", id))
}

// PutReport saves a report to Firestore
func (f *Firestore) PutReport(ctx context.Context, report *model.Report) error {
	if report == nil {
		return goerr.New("report is nil")
	}
	if report.ID == "" {
		return goerr.New("report ID is empty")
	}

	_, err := f.reports().Doc(report.ID.String()).Set(ctx, report)
	if err != nil {
		return goerr.Wrap(err, "failed to save report to firestore", goerr.V("id", report.ID))
	}

	return nil
}

// GetReport retrieves a report by ID
func (f *Firestore) GetReport(ctx context.Context, id types.ReportID) (*model.Report, error) {
	if id == "" {
		return nil, goerr.New("report ID is empty")
	}

	doc, err := f.reports().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get report", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report from firestore")
	}

	var report model.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report")
	}

	return &report, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}
