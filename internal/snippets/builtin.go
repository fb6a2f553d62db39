package snippets

const bt = "`"

var builtin = []string{
	`/**
 * Fetches a resource and retries on failure.
 */
function useFetchWithRetry<T>(url: string, retries = 3): { data: T | null; error: Error | null } {
    const [data, setData] = useState<T | null>(null);
    const [error, setError] = useState<Error | null>(null);

    useEffect(() => {
        let attempts = 0;
        const run = async () => {
            while (attempts < retries) {
                try {
                    const response = await fetch(url);
                    if (!response.ok) throw new Error('request failed');
                    setData(await response.json());
                    return;
                } catch (err) {
                    attempts++;
                    if (attempts >= retries) setError(err as Error);
                }
            }
        };
        run();
    }, [url, retries]);

    return { data, error };
}`,
	`// user state reducer
interface UserState {
    id: string;
    name: string;
    role: 'admin' | 'user' | 'guest';
    preferences: Record<string, unknown>;
}

const initialState: UserState = {
    id: '',
    name: 'Guest',
    role: 'guest',
    preferences: {},
};

export const userReducer = (state = initialState, action: AnyAction) => {
    switch (action.type) {
        case 'SET_USER':
            return { ...state, ...action.payload };
        case 'UPDATE_PREFERENCES':
            return {
                ...state,
                preferences: { ...state.preferences, ...action.payload },
            };
        case 'LOGOUT':
            return initialState;
        default:
            return state;
    }
};`,
	`type RecursivePartial<T> = {
    [P in keyof T]?: T[P] extends (infer U)[]
        ? RecursivePartial<U>[]
        : T[P] extends object
        ? RecursivePartial<T[P]>
        : T[P];
};

function mergeConfig<T>(defaults: T, overrides: RecursivePartial<T>): T {
    return { ...defaults, ...overrides } as T;
}`,
	`const bubbleSort = (arr: number[]): number[] => {
    const n = arr.length;
    let swapped;
    do {
        swapped = false;
        for (let i = 0; i < n - 1; i++) {
            if (arr[i] > arr[i + 1]) {
                [arr[i], arr[i + 1]] = [arr[i + 1], arr[i]];
                swapped = true;
            }
        }
    } while (swapped);
    return arr;
};`,
	`export const ThemeProvider: React.FC<{ children: React.ReactNode }> = ({ children }) => {
    const [theme, setTheme] = useState<'light' | 'dark'>('light');

    const toggleTheme = useCallback(() => {
        setTheme(prev => (prev === 'light' ? 'dark' : 'light'));
        document.body.classList.toggle('dark-theme');
    }, []);

    const value = useMemo(() => ({ theme, toggleTheme }), [theme, toggleTheme]);

    return (
        <ThemeContext.Provider value={value}>
            {children}
        </ThemeContext.Provider>
    );
};`,
	`export function register(config?: Config) {
    if (process.env.NODE_ENV !== 'production' || !('serviceWorker' in navigator)) {
        return;
    }
    const publicUrl = new URL(process.env.PUBLIC_URL, window.location.href);
    if (publicUrl.origin !== window.location.origin) {
        return;
    }

    window.addEventListener('load', () => {
        const swUrl = ` + bt + `${process.env.PUBLIC_URL}/service-worker.js` + bt + `;
        if (isLocalhost) {
            checkValidServiceWorker(swUrl, config);
        } else {
            registerValidSW(swUrl, config);
        }
    });
}`,
	`const GET_DASHBOARD = gql` + bt + `
  query GetDashboard($userId: ID!) {
    user(id: $userId) {
      id
      notifications { id message read }
      projects(limit: 5) { id name status lastUpdated }
    }
  }
` + bt + `;

export function useDashboard(userId: string) {
    const { loading, error, data } = useQuery(GET_DASHBOARD, {
        variables: { userId },
        pollInterval: 5000,
    });
    return { loading, error, data };
}`,
	`describe('Login', () => {
    test('renders the form', () => {
        render(<Login />);
        expect(screen.getByLabelText(/email/i)).toBeInTheDocument();
        expect(screen.getByLabelText(/password/i)).toBeInTheDocument();
    });

    test('shows an error on empty submit', async () => {
        render(<Login />);
        fireEvent.click(screen.getByRole('button', { name: /submit/i }));
        expect(await screen.findByText(/required/i)).toBeInTheDocument();
    });
});`,
}
