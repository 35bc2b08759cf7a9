package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	git "github.com/go-git/go-git/v5"
	gitPlumbing "github.com/go-git/go-git/v5/plumbing"
	gitObject "github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// directoryReader reads the data files from the local filesystem.
type directoryReader struct {
	dir string
}

func (d directoryReader) ReadFile(path string) ([]byte, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.dir, path)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading data file: %w", err)
	}

	return contents, nil
}

func (d directoryReader) Revision() string {
	return d.dir
}

// repositoryReader reads the data files from one revision of a git repository.
type repositoryReader struct {
	repository *git.Repository
	refs       map[string]*gitPlumbing.Reference

	ref    string
	commit gitPlumbing.Hash
	tree   *gitObject.Tree
}

func newRepositoryReader(repo *git.Repository, ref string, logger *zap.Logger) (*repositoryReader, error) {
	ret := repositoryReader{
		repository: repo,
		refs:       make(map[string]*gitPlumbing.Reference),
	}

	if err := ret.addTagRefs(logger); err != nil {
		return nil, fmt.Errorf("failed adding refs based on tags: %w", err)
	}

	if err := ret.addBranchRefs(); err != nil {
		return nil, fmt.Errorf("failed adding refs based on branches: %w", err)
	}

	if ref == "" {
		ref = latestRef(ret.refNames())
	}

	if err := ret.checkout(ref); err != nil {
		return nil, err
	}

	return &ret, nil
}

func (r *repositoryReader) addTagRefs(logger *zap.Logger) error {
	iter, err := r.repository.Tags()
	if err != nil {
		return fmt.Errorf("error iterating tags in local git repository: %w", err)
	}

	err = iter.ForEach(func(tag *gitPlumbing.Reference) error {
		if _, err := r.treeFor(tag); err != nil {
			logger.Info("not using tag without a tree", zap.String("tag", tag.Name().Short()), zap.Error(err))
			return nil
		}

		r.refs[tag.Name().Short()] = tag

		return nil
	})
	if err != nil {
		return fmt.Errorf("error iterating tags in local git repository: %w", err)
	}

	return nil
}

func (r *repositoryReader) addBranchRefs() error {
	branchIterator, err := r.repository.Branches()
	if err != nil {
		return fmt.Errorf("error iterating branches in local git repository: %w", err)
	}

	err = branchIterator.ForEach(func(branch *gitPlumbing.Reference) error {
		r.refs[branch.Name().Short()] = branch
		return nil
	})
	if err != nil {
		return fmt.Errorf("error iterating branches in local git repository: %w", err)
	}

	return nil
}

func (r *repositoryReader) refNames() []string {
	ret := make([]string, 0, len(r.refs))

	for name := range r.refs {
		ret = append(ret, name)
	}

	return ret
}

func (r *repositoryReader) checkout(ref string) error {
	reference, ok := r.refs[ref]
	if !ok {
		return fmt.Errorf("no branch or tag %q in repository: %w", ref, gitPlumbing.ErrReferenceNotFound)
	}

	commit, err := r.commitFor(reference)
	if err != nil {
		return err
	}

	tree, err := r.repository.TreeObject(commit.TreeHash)
	if err != nil {
		return fmt.Errorf("error retrieving tree for revision %q: %w", ref, err)
	}

	r.ref = ref
	r.commit = commit.Hash
	r.tree = tree

	return nil
}

func (r *repositoryReader) commitFor(reference *gitPlumbing.Reference) (*gitObject.Commit, error) {
	commitHash := reference.Hash()

	// annotated tags point to a tag object, not to the commit itself
	if tagObject, err := r.repository.TagObject(reference.Hash()); err == nil {
		commitHash = tagObject.Target
	}

	commit, err := r.repository.CommitObject(commitHash)
	if err != nil {
		return nil, fmt.Errorf("error resolving commit hash '%v' to commit: %w", commitHash, err)
	}

	return commit, nil
}

func (r *repositoryReader) treeFor(reference *gitPlumbing.Reference) (*gitObject.Tree, error) {
	commit, err := r.commitFor(reference)
	if err != nil {
		return nil, err
	}

	tree, err := r.repository.TreeObject(commit.TreeHash)
	if err != nil {
		return nil, fmt.Errorf("error retrieving tree for commit '%v': %w", commit.Hash, err)
	}

	return tree, nil
}

// ReadFile implements types.DataReader on repositoryReader.
func (r *repositoryReader) ReadFile(path string) ([]byte, error) {
	file, err := r.tree.File(filepath.ToSlash(path))
	if err != nil {
		return nil, fmt.Errorf("cannot find %q in revision %q: %w", path, r.ref, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("error reading file contents: %w", err)
	}

	return []byte(contents), nil
}

func (r *repositoryReader) Revision() string {
	return fmt.Sprintf("%v@%v", r.ref, r.commit.String()[:7])
}

// latestRef picks the ref to read when none is configured: the highest semver tag, else main,
// else master, else the lexically last ref.
func latestRef(refs []string) string {
	if len(refs) == 0 {
		return ""
	}

	sort.SliceStable(refs, func(a, b int) bool {
		rankA, verA := refRank(refs[a])
		rankB, verB := refRank(refs[b])

		if rankA != rankB {
			return rankA < rankB
		}

		if verA != nil && verB != nil {
			return verA.GreaterThan(verB)
		}

		return strings.Compare(refs[a], refs[b]) > 0
	})

	return refs[0]
}

func refRank(ref string) (int, *semver.Version) {
	if v, err := semver.NewVersion(ref); err == nil {
		return 0, v
	}

	switch ref {
	case "main":
		return 1, nil
	case "master":
		return 2, nil
	default:
		return 3, nil
	}
}
